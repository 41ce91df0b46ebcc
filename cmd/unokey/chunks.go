package main

import (
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/olekukonko/tablewriter"
	"github.com/tos-network/unocrypto/cmd/utils"
	"github.com/tos-network/unocrypto/internal/flags"
	"github.com/urfave/cli/v2"
)

type chunksOutput struct {
	Value     string   `json:"value"`
	RadixBits int      `json:"radixBits"`
	Chunks    []string `json:"chunks"`
}

var commandDecompose = &cli.Command{
	Name:      "decompose",
	Usage:     "split a value into balance chunks",
	ArgsUsage: "<value>",
	Flags:     flags.Merge([]cli.Flag{jsonFlag}, utils.ChunkFlags),
	Action: func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		if ctx.NArg() != 1 {
			return fmt.Errorf("usage: unokey decompose [options] <value>")
		}
		value, err := uint256.FromDecimal(ctx.Args().First())
		if err != nil {
			return fmt.Errorf("invalid value %q: %v", ctx.Args().First(), err)
		}
		chunks, err := cfg.Balance.Decompose(value)
		if err != nil {
			return err
		}
		out := chunksOutput{Value: value.Dec(), RadixBits: cfg.Balance.RadixBits}
		for _, c := range chunks {
			out.Chunks = append(out.Chunks, strconv.FormatUint(c, 10))
		}
		if ctx.Bool(jsonFlag.Name) {
			return printJSON(ctx, out)
		}
		table := tablewriter.NewWriter(ctx.App.Writer)
		table.SetHeader([]string{"Chunk", "Weight", "Value"})
		for i, c := range out.Chunks {
			table.Append([]string{
				strconv.Itoa(i),
				fmt.Sprintf("2^%d", i*cfg.Balance.RadixBits),
				c,
			})
		}
		table.Render()
		return nil
	},
}

var commandRecompose = &cli.Command{
	Name:      "recompose",
	Usage:     "combine balance chunks into a value",
	ArgsUsage: "<chunk> [ <chunk> ... ]",
	Flags:     flags.Merge([]cli.Flag{jsonFlag}, utils.ChunkFlags),
	Action: func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		if ctx.NArg() == 0 {
			return fmt.Errorf("usage: unokey recompose [options] <chunk> [ <chunk> ... ]")
		}
		chunks := make([]uint64, ctx.NArg())
		for i, arg := range ctx.Args().Slice() {
			if chunks[i], err = strconv.ParseUint(arg, 10, 64); err != nil {
				return fmt.Errorf("invalid chunk %d %q: %v", i, arg, err)
			}
		}
		value, err := cfg.Balance.Recompose(chunks)
		if err != nil {
			return err
		}
		if ctx.Bool(jsonFlag.Name) {
			return printJSON(ctx, map[string]string{"value": value.Dec()})
		}
		fmt.Fprintln(ctx.App.Writer, "Value:", value.Dec())
		return nil
	},
}
