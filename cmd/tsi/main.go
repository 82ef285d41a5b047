// Command tsi retrieves snow–ice interface temperatures from a local AMSR-E /
// AMSR2 L3 archive and prints them as JSON.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
