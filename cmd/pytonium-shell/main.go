// Command pytonium-shell runs the PytoniumShell desktop widget framework.
package main

import (
	"github.com/Maximilian-Winter/pytonium-shell/internal/cli"
)

func main() {
	cli.Execute()
}
