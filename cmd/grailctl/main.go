// grailctl is the command-line client for the grailfeed API.
package main

import (
	"github.com/joho/godotenv"

	"github.com/grailfeed/grailfeed/cmd/grailctl/cmd"
)

func main() {
	_ = godotenv.Load()
	cmd.Execute()
}
