package main

import "github.com/samsaffron/term-diff/cmd"

func main() {
	cmd.Execute()
}
