// Command rellr automates semantic-version releases of a git project.
package main

import (
	"os"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(execute(os.Args[1:], newApp(os.Stdout, os.Stderr)))
}
