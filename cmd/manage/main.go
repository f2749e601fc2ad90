// Package main é o ponto de entrada do comando manage.
package main

import (
	"os"

	"github.com/rafabene/avantpro-admin/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
