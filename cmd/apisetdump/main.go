// Command apisetdump prints the contents of a Windows API set schema
// (the .apiset section of apisetschema.dll) in a human-readable form.
package main

import "os"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
