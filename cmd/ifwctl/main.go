// Command ifwctl is an operator tool that loads intent firewall rule
// directories and exercises the dispatch façade the way a host
// dispatcher would, for manual testing outside the real host.
package main

import (
	"fmt"
	"os"

	"github.com/intentfw/ifw/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
