// Copyright 2015 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

// Package utils contains internal helper functions for the UNO commands.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/tos-network/unocrypto/core/uno"
	"github.com/tos-network/unocrypto/crypto/ecdlp"
	"github.com/tos-network/unocrypto/internal/flags"
	"github.com/tos-network/unocrypto/metrics"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// General settings
	DataDirFlag = &cli.StringFlag{
		Name:     "datadir",
		Usage:    "Data directory for precomputed discrete log tables",
		Value:    DefaultDataDir(),
		Category: flags.MiscCategory,
	}
	ConfigFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.MiscCategory,
	}
	JSONFlag = &cli.BoolFlag{
		Name:     "json",
		Usage:    "output JSON instead of human-readable format",
		Category: flags.MiscCategory,
	}

	// Solver settings
	SolverAlgorithmFlag = &cli.StringFlag{
		Name:     "solver",
		Usage:    `Discrete log engine ("bsgs" or "compact")`,
		Value:    ecdlp.DefaultConfig.Algorithm,
		Category: flags.SolverCategory,
	}
	SolverWidthsFlag = &cli.StringFlag{
		Name:     "solver.widths",
		Usage:    "Comma separated table bit widths",
		Value:    "16,32",
		Category: flags.SolverCategory,
	}
	SolverWorkersFlag = &cli.IntFlag{
		Name:     "solver.workers",
		Usage:    "Goroutines building the compact table (0 = all CPUs)",
		Category: flags.SolverCategory,
	}
	SolverCacheFlag = &cli.IntFlag{
		Name:     "solver.cache",
		Usage:    "Number of solved targets kept in memory (0 = disabled)",
		Value:    ecdlp.DefaultConfig.CacheSize,
		Category: flags.SolverCategory,
	}

	// Balance chunking
	RadixBitsFlag = &cli.IntFlag{
		Name:     "chunk.radix",
		Usage:    "Positional weight of each chunk in bits",
		Value:    uno.BalanceChunkParams.RadixBits,
		Category: flags.BalanceCategory,
	}
	MaxBitsFlag = &cli.IntFlag{
		Name:     "chunk.maxbits",
		Usage:    "Exclusive bit bound of chunked values",
		Value:    uno.BalanceChunkParams.MaxBits,
		Category: flags.BalanceCategory,
	}
	ChunkBitsFlag = &cli.IntFlag{
		Name:     "chunk.bits",
		Usage:    "Exclusive bit bound of each chunk",
		Value:    uno.BalanceChunkParams.ChunkBits,
		Category: flags.BalanceCategory,
	}

	// Logging and debug settings
	VerbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    2,
		Category: flags.LoggingCategory,
	}

	// Metrics flags
	MetricsEnabledFlag = &cli.BoolFlag{
		Name:     "metrics",
		Usage:    "Enable metrics collection",
		Category: flags.MetricsCategory,
	}
)

var (
	// SolverFlags is the flag group of all solver settings.
	SolverFlags = []cli.Flag{
		SolverAlgorithmFlag,
		SolverWidthsFlag,
		SolverWorkersFlag,
		SolverCacheFlag,
	}
	// ChunkFlags is the flag group of the chunk parameters.
	ChunkFlags = []cli.Flag{
		RadixBitsFlag,
		MaxBitsFlag,
		ChunkBitsFlag,
	}
)

// DefaultDataDir is the default data directory to use for the tables.
func DefaultDataDir() string {
	home := homeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".unokey")
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return ""
}

// MakeDataDir retrieves the currently requested data directory, terminating
// if none (or the empty string) is specified.
func MakeDataDir(ctx *cli.Context) string {
	if path := ctx.String(DataDirFlag.Name); path != "" {
		return path
	}
	Fatalf("Cannot determine default data directory, please set manually (--datadir)")
	return ""
}

// SplitAndTrim splits input separated by a comma
// and trims excessive white space from the substrings.
func SplitAndTrim(input string) (ret []string) {
	l := strings.Split(input, ",")
	for _, r := range l {
		if r = strings.TrimSpace(r); r != "" {
			ret = append(ret, r)
		}
	}
	return ret
}

// ParseWidths parses a comma separated list of table widths.
func ParseWidths(input string) ([]int, error) {
	var widths []int
	for _, s := range SplitAndTrim(input) {
		w, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid table width %q: %v", s, err)
		}
		widths = append(widths, w)
	}
	return widths, nil
}

// SetSolverConfig applies solver related command line flags to the config.
func SetSolverConfig(ctx *cli.Context, cfg *ecdlp.Config) error {
	if ctx.IsSet(SolverAlgorithmFlag.Name) {
		cfg.Algorithm = ctx.String(SolverAlgorithmFlag.Name)
	}
	if ctx.IsSet(SolverWidthsFlag.Name) {
		widths, err := ParseWidths(ctx.String(SolverWidthsFlag.Name))
		if err != nil {
			return err
		}
		cfg.Widths = widths
	}
	if ctx.IsSet(SolverWorkersFlag.Name) {
		cfg.Workers = ctx.Int(SolverWorkersFlag.Name)
	}
	if ctx.IsSet(SolverCacheFlag.Name) {
		cfg.CacheSize = ctx.Int(SolverCacheFlag.Name)
	}
	return cfg.Validate()
}

// SetChunkParams applies chunk related command line flags to params.
func SetChunkParams(ctx *cli.Context, params *uno.ChunkParams) error {
	if ctx.IsSet(RadixBitsFlag.Name) {
		params.RadixBits = ctx.Int(RadixBitsFlag.Name)
	}
	if ctx.IsSet(MaxBitsFlag.Name) {
		params.MaxBits = ctx.Int(MaxBitsFlag.Name)
	}
	if ctx.IsSet(ChunkBitsFlag.Name) {
		params.ChunkBits = ctx.Int(ChunkBitsFlag.Name)
	}
	return params.Validate()
}

// SetMetricsConfig applies metrics related command line flags to the config.
func SetMetricsConfig(ctx *cli.Context, cfg *metrics.Config) {
	if ctx.IsSet(MetricsEnabledFlag.Name) {
		cfg.Enabled = ctx.Bool(MetricsEnabledFlag.Name)
	}
}

// SetupLogging installs a terminal log handler at the requested verbosity.
// Output is colored when it goes to a terminal.
func SetupLogging(ctx *cli.Context) {
	var (
		output   = ctx.App.ErrWriter
		useColor = false
	)
	if f, ok := output.(*os.File); ok && os.Getenv("TERM") != "dumb" {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			output = colorable.NewColorable(f)
			useColor = true
		}
	}
	lvl := log.FromLegacyLevel(ctx.Int(VerbosityFlag.Name))
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(output, lvl, useColor)))
}
