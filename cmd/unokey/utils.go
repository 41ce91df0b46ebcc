package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	cryptouno "github.com/tos-network/unocrypto/crypto/uno"
	"github.com/urfave/cli/v2"
	"go.dedis.ch/kyber/v3"
)

var (
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "output JSON instead of human-readable format",
	}
	keyfileFlag = &cli.StringFlag{
		Name:  "keyfile",
		Usage: "key file written by the generate command",
	}
	pubkeyFlag = &cli.StringFlag{
		Name:  "pubkey",
		Usage: "hex encoded public key to encrypt to",
	}
)

// keyFile is the on-disk form of a generated key pair.
type keyFile struct {
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
}

func readKeyFile(path string) (*cryptouno.KeyPair, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyfile '%s': %v", path, err)
	}
	var kf keyFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return nil, fmt.Errorf("failed to parse keyfile '%s': %v", path, err)
	}
	priv, err := hexutil.Decode(kf.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key in '%s': %v", path, err)
	}
	return cryptouno.KeyPairFromPrivateBytes(priv)
}

// requireKeyPair loads the key pair named by --keyfile.
func requireKeyPair(ctx *cli.Context) (*cryptouno.KeyPair, error) {
	path := ctx.String(keyfileFlag.Name)
	if path == "" {
		return nil, fmt.Errorf("--%s is required", keyfileFlag.Name)
	}
	return readKeyFile(path)
}

// publicKey resolves the encryption target from --pubkey or --keyfile.
func publicKey(ctx *cli.Context) (kyber.Point, error) {
	if hex := ctx.String(pubkeyFlag.Name); hex != "" {
		raw, err := hexutil.Decode(hex)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %v", pubkeyFlag.Name, err)
		}
		return cryptouno.PublicKeyFromBytes(raw)
	}
	kp, err := requireKeyPair(ctx)
	if err != nil {
		return nil, fmt.Errorf("need --%s or --%s: %w", pubkeyFlag.Name, keyfileFlag.Name, err)
	}
	return kp.Public, nil
}

// printJSON writes v to the app output as indented JSON.
func printJSON(ctx *cli.Context, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON object: %v", err)
	}
	_, err = fmt.Fprintln(ctx.App.Writer, string(out))
	return err
}
