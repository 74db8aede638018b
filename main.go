package main

import "github.com/HaiFongPan/kupo/cmd"

func main() {
	cmd.Execute()
}
