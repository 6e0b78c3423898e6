package main

import "github.com/bloodmagesoftware/sectored/cmd"

func main() {
	cmd.Execute()
}
