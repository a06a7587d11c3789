package main

import (
	"os"

	"github.com/bnema/clockify-timesheet/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
