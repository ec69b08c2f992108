package main

import (
	"context"
	"os"

	"github.com/okian/iplstats/internal/cli"
	"github.com/okian/iplstats/pkg/logger"
)

func main() {
	code := cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	_ = logger.Sync()
	os.Exit(code)
}
