package main

import (
	"github.com/shiji203/data-driven-discretization-1d/cmd"
)

func main() {
	cmd.Execute()
}
