package main

import (
	"fmt"
	"os"
)

func main() {
	root := newRootCmd(true)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
