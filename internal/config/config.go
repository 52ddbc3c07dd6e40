// Package config handles loading and parsing of configuration for the
// application: connection secrets from the environment and the
// settings.json file describing what to validate.
package config

import (
	"errors"
	"os"
)

// Config holds connection settings loaded from environment variables
// (populated by the .env file in main.go).
type Config struct {
	MongoConnString string
	// SQLConnString is optional: when set, the chain master database is
	// used as a fallback for chain display names.
	SQLConnString string
}

func LoadConfig() (*Config, error) {
	mongoConn := os.Getenv("MONGO_CONNECTION_STRING")
	if mongoConn == "" {
		return nil, errors.New("MONGO_CONNECTION_STRING environment variable not set")
	}

	return &Config{
		MongoConnString: mongoConn,
		SQLConnString:   os.Getenv("SQL_CONNECTION_STRING"),
	}, nil
}
