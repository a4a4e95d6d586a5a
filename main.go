package main

import "github.com/coalfish/gosh/cmd"

func main() {
	cmd.Execute()
}
