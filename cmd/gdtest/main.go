// Command gdtest runs Geodelity test job files against an installed
// runtime and reports pass/fail results through its exit code.
package main

import (
	"os"

	"github.com/geodelity/gdtest/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
