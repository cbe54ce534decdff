package main

import (
	"os"

	"github.com/aymanhs/greensplit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
