package handlers

import (
	"time"

	"go.uber.org/zap"

	"orcamento/go_backend/internal/app/quoting"
)

type Handlers struct {
	Quotes *quoting.Service
	Log    *zap.Logger
	// Clock dates quotes submitted without a date.
	Clock func() time.Time
}

func New(quotes *quoting.Service, log *zap.Logger) *Handlers {
	return &Handlers{Quotes: quotes, Log: log, Clock: time.Now}
}
