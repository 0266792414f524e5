package main

import (
	"os"

	"github.com/insfabric/modelgraph/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
