// Command comparecli is the CLI bridge onto internal/compare: it runs one
// comparison between two paths, then prints the resulting summary and
// change list. Grounded on the teacher's cmd/main.go entry point.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
