package main

import "github.com/gdwatch/console/internal/cli"

func main() {
	cli.Execute()
}
