package main

import "github.com/lexandro/importgraph-mcp/cmd"

func main() {
	cmd.Execute()
}
