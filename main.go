package main

import (
	"os"

	"github.com/fxpgr/stonk/cli"
)

func main() {
	os.Exit(cli.Execute())
}
