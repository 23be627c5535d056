package feeds

import (
	"context"

	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
)

// RateFetcher retrieves candidate rates from an external source.
//
// Implementations return errors matching apperrors.ErrFetch for transport failures and
// apperrors.ErrParse for documents that cannot be read at all. Individual malformed
// records are skipped, not reported. The order of the returned slice is unspecified.
type RateFetcher interface {
	FetchLatestRates(ctx context.Context) ([]domain.RateCandidate, error)
}
