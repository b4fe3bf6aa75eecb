// Command quakectl inspects the KOERI earthquake listing from a terminal:
// fetch and filter the live page, print statistics, or check a saved page.
//
// Usage:
//
//	quakectl fetch --limit 20 --min-magnitude 3
//	quakectl stats --json
//	quakectl parse saved/lst0.html --strict
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
