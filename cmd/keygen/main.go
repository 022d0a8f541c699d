package main

import (
	"fmt"
	"os"

	"github.com/elrathor/casting-api-go/pkg/auth"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env from project root
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: keygen <name>")
		os.Exit(1)
	}

	if os.Getenv("API_MASTER_SECRET") == "" {
		fmt.Fprintln(os.Stderr, "Error: API_MASTER_SECRET not found in environment or .env")
		os.Exit(1)
	}

	name := os.Args[1]
	fmt.Printf("Generated key for %s:\n%s\n", name, auth.GenerateHMACKey(name))
}
