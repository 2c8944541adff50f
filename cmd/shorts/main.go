package main

import "github.com/shorts-cli/shorts/internal/cli"

func main() {
	cli.Execute()
}
