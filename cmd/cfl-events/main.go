package main

import (
	"os"

	"github.com/technical-communicator/central-florida-events/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
