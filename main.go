package main

import (
	"os"

	"github.com/hypelessli/hypeless/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
