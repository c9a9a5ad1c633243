package helper

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// DatabaseConfiguration holds the connection parameters for the snapshot
// archive database.
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// NewDatabaseConfiguration loads the database configuration from the
// environment, reading a .env file first if one exists. All NER_DB_*
// variables except schema and sslmode are required.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	// A missing .env file is fine, the variables may come from the shell.
	_ = godotenv.Load()

	config := &DatabaseConfiguration{
		Host:     os.Getenv("NER_DB_HOST"),
		Port:     os.Getenv("NER_DB_PORT"),
		Database: os.Getenv("NER_DB_DATABASE"),
		Username: os.Getenv("NER_DB_USERNAME"),
		Password: os.Getenv("NER_DB_PASSWORD"),
		Schema:   os.Getenv("NER_DB_SCHEMA"),
		SSLMode:  os.Getenv("NER_DB_SSLMODE"),
	}
	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	for name, value := range map[string]string{
		"NER_DB_HOST":     config.Host,
		"NER_DB_PORT":     config.Port,
		"NER_DB_DATABASE": config.Database,
		"NER_DB_USERNAME": config.Username,
		"NER_DB_PASSWORD": config.Password,
	} {
		if value == "" {
			return nil, fmt.Errorf("missing required environment variable %s", name)
		}
	}

	return config, nil
}

// ConnectionString returns the lib/pq connection string for this
// configuration.
func (c *DatabaseConfiguration) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s search_path=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.Username, c.Password, c.Schema, c.SSLMode,
	)
}
