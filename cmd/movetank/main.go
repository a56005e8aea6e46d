package main

import (
	"os"

	"github.com/jengzang/movetank-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
