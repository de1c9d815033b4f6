package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// IncidentWaitPerDay scales the simulated incident delay: a resolver
	// waits this long per day of declared delay.
	IncidentWaitPerDay time.Duration
}
