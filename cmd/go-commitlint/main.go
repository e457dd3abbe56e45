package main

import (
	"os"

	"github.com/s0ders/go-commitlint/cmd"
	"github.com/s0ders/go-commitlint/internal/appcontext"
)

func main() {
	ctx := appcontext.New()

	if err := cmd.NewRootCommand(ctx).Execute(); err != nil {
		os.Exit(1)
	}
}
