// Copyright 2019 The go-ethereum Authors
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
	"bytes"
	"errors"
	"flag"
	"reflect"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/tos-network/unocrypto/core/uno"
	"github.com/tos-network/unocrypto/crypto/ecdlp"
	"github.com/urfave/cli/v2"
)

func Test_SplitAndTrim(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"two items", "16,32", []string{"16", "32"}},
		{"spaces", " 16 , 32 ", []string{"16", "32"}},
		{"empty entries", "16,,32,", []string{"16", "32"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitAndTrim(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitAndTrim() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseWidths(t *testing.T) {
	got, err := ParseWidths("32, 16")
	if err != nil {
		t.Fatalf("parse widths: %v", err)
	}
	if !reflect.DeepEqual(got, []int{32, 16}) {
		t.Fatalf("widths mismatch: %v", got)
	}
	if _, err := ParseWidths("16,abc"); err == nil {
		t.Fatal("expected error for non numeric width")
	}
}

func newTestContext(t *testing.T, fl []cli.Flag, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range fl {
		if err := f.Apply(set); err != nil {
			t.Fatalf("apply flag: %v", err)
		}
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("parse args: %v", err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestSetSolverConfig(t *testing.T) {
	ctx := newTestContext(t, SolverFlags, "--solver", "compact", "--solver.widths", "24", "--solver.cache", "0")
	cfg := ecdlp.DefaultConfig
	if err := SetSolverConfig(ctx, &cfg); err != nil {
		t.Fatalf("set solver config: %v", err)
	}
	want := ecdlp.Config{Algorithm: ecdlp.AlgorithmCompact, Widths: []int{24}}
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("config mismatch: got %+v want %+v", cfg, want)
	}

	ctx = newTestContext(t, SolverFlags, "--solver", "kangaroo")
	cfg = ecdlp.DefaultConfig
	if err := SetSolverConfig(ctx, &cfg); !errors.Is(err, ecdlp.ErrUnknownAlgorithm) {
		t.Fatalf("expected ErrUnknownAlgorithm, got %v", err)
	}

	ctx = newTestContext(t, SolverFlags, "--solver.widths", "15")
	cfg = ecdlp.DefaultConfig
	if err := SetSolverConfig(ctx, &cfg); !errors.Is(err, ecdlp.ErrInvalidWidth) {
		t.Fatalf("expected ErrInvalidWidth, got %v", err)
	}
}

func TestSetChunkParams(t *testing.T) {
	ctx := newTestContext(t, ChunkFlags, "--chunk.maxbits", "64", "--chunk.bits", "16")
	params := uno.BalanceChunkParams
	if err := SetChunkParams(ctx, &params); err != nil {
		t.Fatalf("set chunk params: %v", err)
	}
	if params != uno.AmountChunkParams {
		t.Fatalf("params mismatch: got %+v want %+v", params, uno.AmountChunkParams)
	}

	ctx = newTestContext(t, ChunkFlags, "--chunk.maxbits", "100")
	params = uno.BalanceChunkParams
	if err := SetChunkParams(ctx, &params); !errors.Is(err, uno.ErrInvalidChunkParams) {
		t.Fatalf("expected ErrInvalidChunkParams, got %v", err)
	}
}

func TestSetupLoggingNonTerminal(t *testing.T) {
	ctx := newTestContext(t, []cli.Flag{VerbosityFlag}, "--verbosity", "4")
	var buf bytes.Buffer
	ctx.App.ErrWriter = &buf
	SetupLogging(ctx)
	log.Debug("probe message", "key", "value")
	if !strings.Contains(buf.String(), "probe message") {
		t.Fatalf("debug message not logged at verbosity 4: %q", buf.String())
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatal("colored output written to a non-terminal")
	}
}
