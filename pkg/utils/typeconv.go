package utils

import (
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseChainID converts the configured chain id string into the int64
// form stored in the chain_id field.
func ParseChainID(chainID string) (int64, error) {
	id, err := strconv.ParseInt(chainID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chain id format: %q", chainID)
	}
	return id, nil
}

// CoerceTime normalizes the various shapes a create_time value shows up
// in (driver time, BSON datetime, epoch numbers, a handful of string
// layouts) into a time.Time. Epoch numbers are taken as milliseconds,
// matching how the documents were originally written.
func CoerceTime(val interface{}) (time.Time, error) {
	switch v := val.(type) {
	case time.Time:
		return v, nil
	case primitive.DateTime:
		return v.Time(), nil
	case int64:
		return time.UnixMilli(v), nil
	case float64:
		return time.UnixMilli(int64(v)), nil
	case string:
		formats := []string{
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02T15:04:05.000Z",
			"2006-01-02 15:04:05",
			"2006-01-02T15:04:05",
		}
		for _, f := range formats {
			if t, err := time.Parse(f, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unable to parse create_time: %s", v)
	default:
		return time.Time{}, fmt.Errorf("cannot convert %T to time", val)
	}
}
