package main

import (
	"os"

	"github.com/talentvec/talentvec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
