package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// Kiosk flow timings. The frontend mirrors these values, so changing
	// one side without the other desyncs the screens.
	ProcessingDelay time.Duration // payment processing -> completed
	CompletedDelay  time.Duration // completed screen -> session reset
	InactivityDelay time.Duration // no input on menu -> help prompt
	StaffCallDelay  time.Duration // staff-call screen -> session reset
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBSource:        getEnv("DB_SOURCE", "kiosk.db"),
		Port:            getEnv("PORT", "8000"),
		JWTSecret:       getEnv("JWT_SECRET", "changeme"),
		JWTTTL:          12 * time.Hour,
		ProcessingDelay: getEnvMs("PROCESSING_DELAY_MS", 2000),
		CompletedDelay:  getEnvMs("COMPLETED_DELAY_MS", 5000),
		InactivityDelay: getEnvMs("INACTIVITY_DELAY_MS", 15000),
		StaffCallDelay:  getEnvMs("STAFF_CALL_DELAY_MS", 5000),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvMs(key string, fallback int) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return time.Duration(n) * time.Millisecond
		}
		log.Printf("invalid %s=%q, using default %dms", key, v, fallback)
	}
	return time.Duration(fallback) * time.Millisecond
}
