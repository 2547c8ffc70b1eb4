// tasknotify - task completion notifications for coding agents
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/tasknotify

package main

import (
	"os"

	"github.com/ariel-frischer/tasknotify/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
