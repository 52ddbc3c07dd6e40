package validation

import (
	"time"

	"github.com/stonexiaolei/tuzhan-data/pkg/models"
)

// All validation arithmetic is pinned to the business timezone. Record
// timestamps are stored in UTC and converted at the store boundary.
var referenceZone = loadReferenceZone()

func loadReferenceZone() *time.Location {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		// No DST in CST, a fixed offset is equivalent.
		return time.FixedZone("CST", 8*3600)
	}
	return loc
}

// ReferenceZone returns the timezone all windows and verdicts use.
func ReferenceZone() *time.Location {
	return referenceZone
}

// Now returns the current instant in the reference timezone.
func Now() time.Time {
	return time.Now().In(referenceZone)
}

// TodayWindow computes the inclusive bounds of now's calendar day:
// 00:00:00.000000 through 23:59:59.999999 in now's location. Callers
// must pass an instant already in the reference timezone.
func TodayWindow(now time.Time) models.ValidationWindow {
	year, month, day := now.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	end := time.Date(year, month, day, 23, 59, 59, 999999*int(time.Microsecond), now.Location())
	return models.ValidationWindow{Start: start, End: end}
}
