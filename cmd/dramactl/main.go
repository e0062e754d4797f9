package main

import "dramactl/internal/cli"

func main() {
	cli.Execute()
}
