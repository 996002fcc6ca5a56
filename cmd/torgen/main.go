package main

import "github.com/dgallion1/torgen/internal/cli"

func main() {
	cli.Execute()
}
