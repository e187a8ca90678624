package cmd

import "time"

// Config carries the environment-supplied settings of the application.
type Config struct {
	HTTPPort    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSslMode   string
	LockTimeout time.Duration
}
