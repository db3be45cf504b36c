// Copyright © 2024 The junkcheck authors

package main

import "github.com/luthersystems/junkcheck/cmd"

func main() {
	cmd.Execute()
}
