package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "prtdcd: %v\n", err)
		os.Exit(1)
	}
}
