package main

import (
	"github.com/mcoot/memorymatch-go/internal/cli"
)

func main() {
	cli.Execute()
}
