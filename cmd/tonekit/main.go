// tonekit manages deterministic color palettes for generative rendering.
package main

import (
	"os"

	"github.com/wethinkt/go-tonekit/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
