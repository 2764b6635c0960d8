// cubescan - CLI for classifying, validating and repairing cube color scans.
package main

import (
	"github.com/SeamusWaldron/cubescan/internal/cli"
)

func main() {
	cli.Execute()
}
