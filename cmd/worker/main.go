package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"legalblog-backend/pkg/logger"
)

// The worker runs alongside the API: it delivers queued emails and runs the
// nightly token cleanup. It shares the database and Redis with the API but
// serves no HTTP traffic.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	Run()
}
