// The main package for the tadu-crawler executable.
package main

import "github.com/novelhub/tadu-crawler/cmd"

func main() {
	cmd.Execute()
}
