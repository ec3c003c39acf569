package main

import (
	"github.com/alecthomas/kong"

	"droscher.com/Taproom/cmd"
)

func main() {
	ctx := kong.Parse(&cmd.CLI, kong.Name("taproom"), kong.Description("Taproom manages bars, the beers they pour and the orders they take."))
	err := ctx.Run(&cmd.Context{Debug: cmd.CLI.Debug})
	ctx.FatalIfErrorf(err)
}
