// main.go
//
// Entry point; the CLI lives in cmd/root.go.

package main

import (
	"github.com/Christian2525252525/bbl-evacuatie-calculator/cmd"
)

func main() {
	cmd.Execute()
}
