package main

import "github.com/stubgen/stubgen/cmd"

func main() {
	cmd.Execute()
}
