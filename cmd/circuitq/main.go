// Command circuitq analyzes circuit builder documents from the command line.
package main

import "github.com/katalvlaran/circuitq/cmd/circuitq/cmd"

func main() {
	cmd.Execute()
}
