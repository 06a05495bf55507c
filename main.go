package main

import (
	"os"

	"blusa/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
