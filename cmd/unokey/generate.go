package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	cryptouno "github.com/tos-network/unocrypto/crypto/uno"
	"github.com/urfave/cli/v2"
)

var commandGenerate = &cli.Command{
	Name:      "generate",
	Usage:     "generate a new twisted ElGamal key pair",
	ArgsUsage: "[ <keyfile> ]",
	Description: `
Generate a new key pair. The keys are printed, and also written as JSON to
keyfile when one is given. The keyfile holds the private key unencrypted.
`,
	Flags: []cli.Flag{
		jsonFlag,
	},
	Action: func(ctx *cli.Context) error {
		kp := cryptouno.GenerateKeyPair(nil)
		priv, pub := kp.PrivateKeyBytes(), kp.PublicKeyBytes()
		out := keyFile{
			PrivateKey: hexutil.Encode(priv[:]),
			PublicKey:  hexutil.Encode(pub[:]),
		}
		if path := ctx.Args().First(); path != "" {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("keyfile already exists at %s", path)
			}
			blob, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, blob, 0600); err != nil {
				return fmt.Errorf("failed to write keyfile to %s: %v", path, err)
			}
			log.Debug("Wrote keyfile", "path", path)
		}
		if ctx.Bool(jsonFlag.Name) {
			return printJSON(ctx, out)
		}
		fmt.Fprintln(ctx.App.Writer, "Public key: ", out.PublicKey)
		fmt.Fprintln(ctx.App.Writer, "Private key:", out.PrivateKey)
		return nil
	},
}
