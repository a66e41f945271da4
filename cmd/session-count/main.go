package main

import (
	"os"

	"github.com/alex-ip/EaaSI-sessions/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
