package main

import (
	"context"
	"os"

	"github.com/aretw0/markov/internal/cli"
)

func main() {
	sc := cli.NewSignalContext(context.Background())
	err := Execute(sc)
	sig := sc.Signal()
	sc.Cancel()
	if code := cli.ExitCode(os.Stdout, os.Stderr, err, sig); code != 0 {
		os.Exit(code)
	}
}
