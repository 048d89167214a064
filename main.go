package main

import (
	"github.com/soloelec/invsheet/cmd"
)

func main() {
	cmd.Execute()
}
