package pdf

import (
	"context"

	"orcamento/go_backend/internal/domain/quote"
)

type Generator interface {
	Generate(ctx context.Context, doc quote.Document) ([]byte, error)
}
