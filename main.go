package main

import "github.com/notargets/gorwg/cmd"

func main() {
	cmd.Execute()
}
