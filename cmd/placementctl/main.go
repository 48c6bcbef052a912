// Command placementctl runs the placement predictor offline: predictions and
// reports for a profile file, dataset trends and Qdrant indexing.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
