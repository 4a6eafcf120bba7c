package main

import (
	"fmt"
	"os"

	"github.com/reefdb/reef/cmd/reef/run"
)

func main() {
	if err := run.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
