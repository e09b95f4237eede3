package main

import "github.com/giterra/giterra/cmd"

func main() {
	cmd.Execute()
}
