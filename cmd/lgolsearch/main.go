// Command lgolsearch runs the chunked BFS/DFS search over a Life-like
// cellular automaton's row-construction graph.
package main

import "github.com/lgolsearch/search/cmd/lgolsearch/cmd"

func main() {
	cmd.Execute()
}
