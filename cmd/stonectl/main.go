package main

import "github.com/mcoot/stonegame/internal/cli"

func main() {
	cli.Execute()
}
