package main

import "streamvault/cmd"

func main() {
	cmd.Execute()
}
