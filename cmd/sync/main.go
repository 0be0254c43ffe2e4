// cmd/sync/main.go
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := execute(ctx, &app{}, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// execute runs the root command and closes whatever the command opened,
// whether it succeeded or not.
func execute(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) error {
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}
