package main

import (
	"os"

	"github.com/Rana718/salesgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
