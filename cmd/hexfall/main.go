package main

import (
	"github.com/mkrall/hexfall/internal/cli"
)

func main() {
	cli.Execute()
}
