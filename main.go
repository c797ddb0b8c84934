package main

import "github.com/notargets/odtmesh/cmd"

func main() {
	cmd.Execute()
}
