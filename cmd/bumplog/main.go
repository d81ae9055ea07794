package main

import (
	"os"

	"github.com/ariel-frischer/bumplog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
