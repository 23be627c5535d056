// Command hash_client_secret prints an API_CLIENTS entry for a client id and secret.
//
//	go run ./cmd/hash_client_secret reporting 's3cret'
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/dkk_exchange_service/internal/utils"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) != 3 {
		logger.Error("usage: hash_client_secret <client-id> <client-secret>")
		os.Exit(2)
	}

	hash, err := utils.HashClientSecret(os.Args[2])
	if err != nil {
		logger.Error("Failed to hash client secret", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Printf("%s:%s\n", os.Args[1], hash)
}
