package main

import "github.com/shrishtravels/routegen/pkg/cmd"

func main() {
	cmd.Execute()
}
