// henchman runs compose-style deployments as supervised container processes.
package main

import (
	"os"

	"github.com/steveyegge/henchman/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
