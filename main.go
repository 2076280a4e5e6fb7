package main

import "pharmacy-manager/cmd"

func main() {
	cmd.Execute()
}
