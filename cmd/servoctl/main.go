package main

import (
	"github.com/linkbots/servolink/pkg/cli/sh"

	_ "github.com/linkbots/servolink/pkg/cli/cmds/servo"
)

//go-build: CGO_ENABLED=0

func main() {
	sh.Main()
}
