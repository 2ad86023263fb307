// grailfeed is the thrift-fashion feed API server.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/grailfeed/grailfeed/cmd/grailfeed/cmd"
)

func main() {
	// Optional .env for local development; config values reference the
	// environment via ${VAR} substitution.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
