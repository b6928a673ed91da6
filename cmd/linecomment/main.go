package main

import "linecomment/cmd/linecomment/cmd"

func main() {
	cmd.Execute()
}
