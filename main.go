package main

import "passgen/internal/cli"

func main() {
	cli.Execute()
}
