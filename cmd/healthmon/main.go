package main

import (
	"os"

	"github.com/playok/healthmon/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
