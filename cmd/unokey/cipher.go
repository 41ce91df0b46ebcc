package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/tos-network/unocrypto/cmd/utils"
	"github.com/tos-network/unocrypto/core/uno"
	"github.com/tos-network/unocrypto/crypto/ecdlp"
	cryptouno "github.com/tos-network/unocrypto/crypto/uno"
	"github.com/tos-network/unocrypto/internal/flags"
	"github.com/tos-network/unocrypto/tosdb/leveldb"
	"github.com/urfave/cli/v2"
)

const (
	tableDirName = "ecdlp"
	tableCache   = 16 // MiB
	tableHandles = 16
)

var chunkedFlag = &cli.BoolFlag{
	Name:  "chunked",
	Usage: "encrypt a wide value as a chunked balance",
}

var commandEncrypt = &cli.Command{
	Name:      "encrypt",
	Usage:     "encrypt an amount or a chunked balance",
	ArgsUsage: "<value>",
	Description: `
Encrypt a decimal value to a public key. Plain amounts must fit 64 bits. With
--chunked the value is decomposed by the chunk parameters and every chunk is
encrypted separately.
`,
	Flags: flags.Merge([]cli.Flag{jsonFlag, pubkeyFlag, keyfileFlag, chunkedFlag}, utils.ChunkFlags),
	Action: func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		if ctx.NArg() != 1 {
			return fmt.Errorf("usage: unokey encrypt [options] <value>")
		}
		value, err := uint256.FromDecimal(ctx.Args().First())
		if err != nil {
			return fmt.Errorf("invalid value %q: %v", ctx.Args().First(), err)
		}
		pub, err := publicKey(ctx)
		if err != nil {
			return err
		}
		c := cryptouno.NewCipher(nil)

		var (
			blob   []byte
			chunks = 1
		)
		if ctx.Bool(chunkedFlag.Name) {
			b, err := uno.EncryptBalance(c, cfg.Balance, value, pub)
			if err != nil {
				return err
			}
			if blob, err = b.MarshalBinary(); err != nil {
				return err
			}
			chunks = len(b.Chunks)
		} else {
			if !value.IsUint64() {
				return fmt.Errorf("%w: %s does not fit 64 bits, use --%s", cryptouno.ErrAmountOutOfRange, value.Dec(), chunkedFlag.Name)
			}
			ct, err := c.Encrypt(pub, value.Uint64())
			if err != nil {
				return err
			}
			if blob, err = ct.MarshalBinary(); err != nil {
				return err
			}
		}
		out := struct {
			Ciphertext string `json:"ciphertext"`
			Chunks     int    `json:"chunks"`
		}{hexutil.Encode(blob), chunks}
		if ctx.Bool(jsonFlag.Name) {
			return printJSON(ctx, out)
		}
		fmt.Fprintln(ctx.App.Writer, "Ciphertext:", out.Ciphertext)
		return nil
	},
}

var commandDecrypt = &cli.Command{
	Name:      "decrypt",
	Usage:     "decrypt an amount or a chunked balance",
	ArgsUsage: "<ciphertext>",
	Description: `
Decrypt a hex ciphertext with the private key in --keyfile. A 64-byte input is
a single amount; longer inputs are chunked balances under the chunk
parameters. Decryption builds (or, for the compact solver, loads from the data
directory) the discrete log tables first.
`,
	Flags: flags.Merge([]cli.Flag{jsonFlag, keyfileFlag}, utils.SolverFlags, utils.ChunkFlags),
	Action: func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		if ctx.NArg() != 1 {
			return fmt.Errorf("usage: unokey decrypt [options] <ciphertext>")
		}
		kp, err := requireKeyPair(ctx)
		if err != nil {
			return err
		}
		blob, err := hexutil.Decode(ctx.Args().First())
		if err != nil {
			return fmt.Errorf("invalid ciphertext: %v", err)
		}
		solver, closeStore, err := makeSolver(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		// Build the tables while the input points are decoded. The build
		// must be finished before the table store is closed.
		initCtx, cancel := context.WithCancel(ctx.Context)
		defer cancel()
		ready := ecdlp.InitializeAsync(initCtx, solver, cfg.Solver.Widths)

		var (
			ct      *cryptouno.Ciphertext
			balance *uno.Balance
		)
		if len(blob) == cryptouno.CiphertextSize {
			ct, err = cryptouno.UnmarshalCiphertext(blob)
		} else {
			balance, err = uno.UnmarshalBalance(cfg.Balance, blob)
		}
		if err != nil {
			cancel()
			<-ready
			return err
		}
		if err := <-ready; err != nil {
			return err
		}
		c := cryptouno.NewCipher(solver)

		var value *uint256.Int
		if ct != nil {
			x, err := c.Decrypt(ct, kp)
			if err != nil {
				return err
			}
			value = uint256.NewInt(x)
		} else if value, err = uno.DecryptBalance(c, cfg.Balance, balance, kp); err != nil {
			return err
		}
		if ctx.Bool(jsonFlag.Name) {
			return printJSON(ctx, map[string]string{"value": value.Dec()})
		}
		fmt.Fprintln(ctx.App.Writer, "Value:", value.Dec())
		return nil
	},
}

// makeSolver creates the configured solver. The compact engine persists its
// table under the data directory; the returned func releases that database.
func makeSolver(cfg unokeyConfig) (ecdlp.Solver, func(), error) {
	var (
		store *ecdlp.TableStore
		done  = func() {}
	)
	if cfg.Solver.Algorithm == ecdlp.AlgorithmCompact && cfg.DataDir != "" {
		db, err := leveldb.New(filepath.Join(cfg.DataDir, tableDirName), tableCache, tableHandles, false)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open table store: %v", err)
		}
		store = ecdlp.NewTableStore(db)
		done = func() {
			if err := db.Close(); err != nil {
				log.Warn("Failed to close table store", "err", err)
			}
		}
	}
	solver, err := cryptouno.NewSolver(cfg.Solver, store)
	if err != nil {
		done()
		return nil, nil, err
	}
	return solver, done, nil
}

// initSolver creates the configured solver and builds its tables.
func initSolver(ctx context.Context, cfg unokeyConfig) (ecdlp.Solver, func(), error) {
	solver, done, err := makeSolver(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := solver.Initialize(ctx, cfg.Solver.Widths); err != nil {
		done()
		return nil, nil, err
	}
	return solver, done, nil
}
