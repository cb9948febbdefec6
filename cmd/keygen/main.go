// Command keygen prints fresh keys for a .env file:
//
//	go run ./cmd/keygen >> .env
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/dmitrymomot/authkit/pkg/secrets"
)

func main() {
	encryptionKey, err := secrets.GenerateEncodedKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "keygen: %v\n", err)
		os.Exit(1)
	}

	signingKey := make([]byte, 48)
	if _, err := rand.Read(signingKey); err != nil {
		fmt.Fprintf(os.Stderr, "keygen: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("RECOVERY_ENCRYPTION_KEY=%s\n", encryptionKey)
	fmt.Printf("JWT_SIGNING_KEY=%s\n", base64.RawURLEncoding.EncodeToString(signingKey))
}
