// Command fireplan projects a household's FIRE drawdown, benefit eligibility
// and sustainable spending from a YAML profile.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
