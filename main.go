package main

import "github.com/semanticdata/duplicate-finder/cmd"

func main() {
	cmd.Execute()
}
