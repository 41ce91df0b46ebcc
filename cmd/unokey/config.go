package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/tos-network/unocrypto/cmd/utils"
	"github.com/tos-network/unocrypto/core/uno"
	"github.com/tos-network/unocrypto/crypto/ecdlp"
	"github.com/tos-network/unocrypto/internal/flags"
	"github.com/tos-network/unocrypto/metrics"
	"github.com/urfave/cli/v2"
)

var commandDumpConfig = &cli.Command{
	Name:      "dumpconfig",
	Usage:     "print the effective configuration as TOML",
	ArgsUsage: "[ <file> ]",
	Flags:     flags.Merge(utils.SolverFlags, utils.ChunkFlags),
	Description: `
Print the configuration resulting from the defaults, the --config file and
the command line flags. With a file argument the TOML is written there.
`,
	Action: dumpConfig,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type unokeyConfig struct {
	Solver  ecdlp.Config
	Balance uno.ChunkParams
	Metrics metrics.Config
	DataDir string
}

func defaultConfig() unokeyConfig {
	solver := ecdlp.DefaultConfig
	solver.Widths = append([]int(nil), ecdlp.DefaultConfig.Widths...)
	return unokeyConfig{
		Solver:  solver,
		Balance: uno.BalanceChunkParams,
		Metrics: metrics.DefaultConfig,
		DataDir: utils.DefaultDataDir(),
	}
}

func loadConfig(file string, cfg *unokeyConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the defaults, then the config file, then the flags.
func makeConfig(ctx *cli.Context) (unokeyConfig, error) {
	cfg := defaultConfig()
	if file := ctx.String(utils.ConfigFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, fmt.Errorf("invalid config file: %v", err)
		}
	}
	if ctx.IsSet(utils.DataDirFlag.Name) {
		cfg.DataDir = ctx.String(utils.DataDirFlag.Name)
	}
	if err := utils.SetSolverConfig(ctx, &cfg.Solver); err != nil {
		return cfg, err
	}
	if err := utils.SetChunkParams(ctx, &cfg.Balance); err != nil {
		return cfg, err
	}
	utils.SetMetricsConfig(ctx, &cfg.Metrics)
	metrics.Setup(cfg.Metrics)
	return cfg, nil
}

func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	if file := ctx.Args().First(); file != "" {
		return os.WriteFile(file, out, 0644)
	}
	_, err = ctx.App.Writer.Write(out)
	return err
}
