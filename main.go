package main

import (
	"github.com/AMOUAN/projet-electro/cmd"
)

func main() {
	cmd.Execute()
}
