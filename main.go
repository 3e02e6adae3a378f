package main

import (
	"os"

	"github.com/ssmythe/tactics-manager/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
