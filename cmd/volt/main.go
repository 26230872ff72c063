// Package main is the entry point for the volt CLI.
// The CLI rents GPU pods on the VoltageGPU platform and runs Python
// functions on them.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/Jabsama/VOLTAGEGPU-CLI/cmd/volt/cmd"
)

func main() {
	// A .env in the working directory can carry VOLT_API_KEY.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
