package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A local .env may carry PATROL_API_KEY; absence of the file is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
