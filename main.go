package main

import "blueiris-cli/cmd"

func main() {
	cmd.Execute()
}
