package main

import "github.com/hermz580/convoscope/internal/cli"

func main() {
	cli.Execute()
}
