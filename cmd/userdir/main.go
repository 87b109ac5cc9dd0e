// Command userdir browses a remote user directory.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/userdir/internal/cli"
	"github.com/rshade/userdir/pkg/version"
)

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.Execute()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
