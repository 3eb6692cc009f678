package main

import (
	"fmt"
	"os"

	"github.com/sweetshop/storefront/internal/cli"
)

func main() {
	if err := cli.NewRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", cli.UserMessage(err))
		os.Exit(cli.ExitCode(err))
	}
}
