// Command jsonsql compiles query spec files to SQL.
package main

import (
	"os"

	"github.com/zoobzio/jsonsql/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
