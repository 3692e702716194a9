// Command waygraph draws waypoint graphs from scene files and inspects
// encoded graph snapshots.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
