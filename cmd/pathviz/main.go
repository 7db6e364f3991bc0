// Command pathviz is an interactive terminal visualizer and headless solver
// for step-wise grid searches.
//
// Usage:
//
//	pathviz run                 interactive viewer (mouse + keyboard)
//	pathviz solve --map maze.txt --algorithm astar --diagonal
//	pathviz config init         write the default pathviz.yaml
//	pathviz config show         print the effective configuration
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
