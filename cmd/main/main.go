package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/stonexiaolei/tuzhan-data/internal/cli"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
