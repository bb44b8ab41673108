package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
)

// Keypair holds the process-wide RSA signing pair. It is initialized once
// before the server accepts requests and is read-only afterwards, so
// concurrent reads need no locking.
type Keypair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// LoadKeypair reads a PKCS#8 private key and a PKIX public key from the
// given PEM files. If either load fails for any reason it logs a warning
// and generates an ephemeral 2048-bit pair instead. Tokens issued before a
// restart become unverifiable in that mode, and instances behind a load
// balancer will disagree; acceptable for non-production use only.
func LoadKeypair(privateKeyPath, publicKeyPath string) *Keypair {
	priv, err := loadPrivateKey(privateKeyPath)
	if err == nil {
		var pub *rsa.PublicKey
		pub, err = loadPublicKey(publicKeyPath)
		if err == nil {
			slog.Info("loaded RSA keypair",
				"private_key", privateKeyPath,
				"public_key", publicKeyPath)
			return &Keypair{Private: priv, Public: pub}
		}
	}

	slog.Warn("failed to load RSA keys, generating ephemeral keypair",
		"private_key", privateKeyPath,
		"public_key", publicKeyPath,
		"error", err)

	generated, genErr := rsa.GenerateKey(rand.Reader, 2048)
	if genErr != nil {
		// rand.Reader does not fail on any supported platform.
		panic(fmt.Sprintf("generate ephemeral RSA keypair: %v", genErr))
	}
	return &Keypair{Private: generated, Public: &generated.PublicKey}
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key %s: %w", path, err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key %s is not RSA", path)
	}
	return rsaKey, nil
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key %s: %w", path, err)
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key %s is not RSA", path)
	}
	return rsaKey, nil
}

func readPEM(path string) (*pem.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in %s", path)
	}
	return block, nil
}
