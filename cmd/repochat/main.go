package main

import (
	"log/slog"
	"os"
)

func main() {
	// CLI output goes to stdout; keep structured logs on stderr and quiet
	// unless something goes wrong.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if err := rootCmd.Execute(); err != nil {
		errorf("%v", err)
		os.Exit(1)
	}
}
