package main

import "github.com/notargets/gopattern/cmd"

func main() {
	cmd.Execute()
}
