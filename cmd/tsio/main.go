package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/broady/tsio/cmd/tsio/internal/check"
	"github.com/broady/tsio/cmd/tsio/internal/gen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate io-ts codecs from a type dump."`
	Check   check.Cmd  `cmd:"" help:"Report declarations that have no codec, without writing output."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("tsio"),
		kong.Description("Generate io-ts codecs for TypeScript declarations."),
		kong.UsageOnError(),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
