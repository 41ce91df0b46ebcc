package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tos-network/unocrypto/cmd/utils"
	"github.com/tos-network/unocrypto/crypto/ecdlp"
	"github.com/urfave/cli/v2"
)

var commandPrecompute = &cli.Command{
	Name:  "precompute",
	Usage: "build the compact discrete log table into the data directory",
	Description: `
Build the compact solver table for the widest configured width and store it
under <datadir>/ecdlp, so later decrypt runs with --solver compact only load
it. An already stored table is verified and kept.
`,
	Flags: utils.SolverFlags,
	Action: func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		if cfg.DataDir == "" {
			cfg.DataDir = utils.MakeDataDir(ctx)
		}
		cfg.Solver.Algorithm = ecdlp.AlgorithmCompact
		cfg.Solver.CacheSize = 0

		start := time.Now()
		_, done, err := initSolver(ctx.Context, cfg)
		if err != nil {
			return err
		}
		done()

		widest := 0
		for _, w := range cfg.Solver.Widths {
			if w > widest {
				widest = w
			}
		}
		fmt.Fprintf(ctx.App.Writer, "Discrete log table for %d bits ready in %s (%v)\n",
			widest, filepath.Join(cfg.DataDir, tableDirName), common.PrettyDuration(time.Since(start)))
		return nil
	},
}
