// Command safefn lists, describes, and calls the sample handlers wrapped by
// the safefn engine.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errCallFailed) {
			fmt.Fprintln(os.Stderr, "safefn:", err)
		}
		stop()
		os.Exit(1)
	}
}
