package main

import (
	"os"

	"github.com/abhisek/drillz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
