package env

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Init loads variables from a .env file when one is present. Real
// environment variables always win over file values.
func Init() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
}

func GetString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			log.Printf("warning: env %s must be an integer but got %q, using fallback %d", key, val, fallback)
			return fallback
		}
		return i
	}
	return fallback
}
