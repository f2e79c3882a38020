package main

import "github.com/moyu-x/tidy-file/cmd"

func main() {
	cmd.Execute()
}
