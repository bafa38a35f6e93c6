package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/filmlab/rolltag"
)

func main() {
	root := newRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(rolltag.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
