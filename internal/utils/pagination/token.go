package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	"github.com/google/uuid"
)

const timeFormat = time.RFC3339Nano

// EncodeConversionToken creates an opaque cursor pointing just past the given ledger entry.
// The token is URL-safe so it can travel in a query string.
func EncodeConversionToken(conversionDate time.Time, conversionID string) string {
	tokenStr := fmt.Sprintf("%s|%s", conversionDate.UTC().Format(timeFormat), conversionID)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeConversionToken parses a token produced by EncodeConversionToken.
func DecodeConversionToken(token string) (*domain.ConversionCursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("invalid pagination token format (split)")
	}

	conversionDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (conversion date parse): %w", err)
	}

	// Ledger ids are UUIDs; anything else would only fail later inside the store.
	if _, err := uuid.Parse(parts[1]); err != nil {
		return nil, fmt.Errorf("invalid pagination token format (conversion id): %w", err)
	}

	return &domain.ConversionCursor{ConversionDate: conversionDate, ConversionID: parts[1]}, nil
}
