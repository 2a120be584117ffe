package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/debemdeboas/site-admin/internal/cli"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
