package main

import "github.com/meenmo/modates/internal/cli"

func main() {
	cli.Execute()
}
