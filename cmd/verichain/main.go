package main

import (
	"github.com/verichain/verichain/cmd/verichain/cmd"
)

func main() {
	cmd.Execute()
}
