// unokey is a command-line tool for twisted ElGamal UNO keys, ciphertexts and
// chunked balances.
package main

import (
	"fmt"
	"os"

	"github.com/tos-network/unocrypto/cmd/utils"
	"github.com/tos-network/unocrypto/internal/flags"
	"github.com/urfave/cli/v2"
)

// Git SHA1 commit hash of the release (set via linker flags)
var gitCommit = ""
var gitDate = ""

var app = newApp()

func newApp() *cli.App {
	app := flags.NewApp(gitCommit, gitDate, "an UNO confidential balance tool")
	app.Flags = []cli.Flag{
		utils.ConfigFileFlag,
		utils.DataDirFlag,
		utils.VerbosityFlag,
		utils.MetricsEnabledFlag,
	}
	app.Commands = []*cli.Command{
		commandGenerate,
		commandEncrypt,
		commandDecrypt,
		commandDecompose,
		commandRecompose,
		commandPrecompute,
		commandDumpConfig,
	}
	app.Before = func(ctx *cli.Context) error {
		utils.SetupLogging(ctx)
		return nil
	}
	return app
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
