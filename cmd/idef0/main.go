// Command idef0 renders, checks and converts IDEF0 diagrams, and edits
// images with a generative model.
package main

import (
	"os"
)

func main() {
	a := newApp(os.Stdout, os.Stderr)
	if err := newRootCmd(a).Execute(); err != nil {
		a.fail(err)
		os.Exit(1)
	}
}
