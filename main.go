package main

import "github.com/kozaktomas/imagehash/cmd"

func main() {
	cmd.Execute()
}
