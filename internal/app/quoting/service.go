package quoting

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"orcamento/go_backend/internal/domain/quote"
	"orcamento/go_backend/internal/domain/quote/pdf"
)

const ContentType = "application/pdf"

// Result is a rendered quote ready for download.
type Result struct {
	Document    quote.Document
	PDF         []byte
	FileName    string
	ContentType string
}

type Service struct {
	Builder   *quote.Builder
	Generator pdf.Generator
	Log       *zap.Logger
}

func New(b *quote.Builder, g pdf.Generator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Builder: b, Generator: g, Log: log}
}

// Issue builds one quote document and renders it. A number drawn for a
// document that then fails to render is not given back.
func (s *Service) Issue(ctx context.Context, in quote.Input) (Result, error) {
	doc, err := s.Builder.Build(ctx, in)
	if err != nil {
		s.Log.Info("quote: rejected", zap.Error(err))
		return Result{}, err
	}

	data, err := s.Generator.Generate(ctx, doc)
	if err != nil {
		if !errors.Is(err, quote.ErrRender) {
			err = quote.RenderErrorf("%s: %w", doc.Meta.Number, err)
		}
		s.Log.Error("quote: render failed", zap.String("number", doc.Meta.Number.String()), zap.Error(err))
		return Result{}, err
	}

	s.Log.Info("quote: issued",
		zap.String("number", doc.Meta.Number.String()),
		zap.Int("items", len(doc.Items)),
		zap.String("total", doc.Totals.Total.StringFixed(2)),
		zap.Int("bytes", len(data)),
	)
	return Result{
		Document:    doc,
		PDF:         data,
		FileName:    quote.FileName(doc.Client.Name, doc.Meta.Number),
		ContentType: ContentType,
	}, nil
}
