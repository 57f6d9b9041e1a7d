package main

import (
	"os"

	"github.com/hejijunhao/lsaccess/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
