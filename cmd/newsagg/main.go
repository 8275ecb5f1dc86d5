// Command newsagg aggregates news articles from several providers.
package main

import (
	"os"

	"github.com/custodia-labs/newsagg/internal/adapters/driving/cli"
)

func main() {
	cli.Bootstrap = bootstrap
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
