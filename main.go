package main

import "raidtrack/cmd"

func main() {
	cmd.Execute()
}
