// cmd/benchmerge/main.go
package main

import (
	cmd "github.com/benchmerge/benchmerge/internal/commands"
)

// main starts the benchmerge CLI application by delegating to the
// cobra root command defined in the benchmerge package. It does not
// take any arguments and does not return a value.
func main() {
	cmd.Execute()
}
