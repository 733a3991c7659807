package main

import (
	"context"
	"fmt"
	"os"

	"github.com/zarlcorp/core/pkg/zapp"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("zbook"))

	ctx, cancel := zapp.SignalContext(context.Background())

	err := newRootCmd(&state{}).ExecuteContext(ctx)
	cancel()

	if cerr := app.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "zbook: %v\n", err)
		os.Exit(1)
	}
}
