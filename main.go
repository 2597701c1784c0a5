// Package main is the entry point for the hoopsgrab application.
package main

import (
	"github.com/hoopsgrab-cli/hoopsgrab/cmd"
	"github.com/hoopsgrab-cli/hoopsgrab/config"
	"github.com/hoopsgrab-cli/hoopsgrab/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
