package main

import (
	"github.com/rancher/tagpin/cmd"
)

func main() {
	cmd.Execute()
}
