package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/curio/cmd/curio/commands"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := commands.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "curio: %v\n", err)
		return 1
	}
	return 0
}
