// Command objcat edits catalogs of objects with prototype inheritance.
package main

import "github.com/mesh-intelligence/objcat/internal/cli"

func main() {
	cli.Execute()
}
