package main

import "mlscaffold/internal/cli"

func main() {
	cli.Execute()
}
