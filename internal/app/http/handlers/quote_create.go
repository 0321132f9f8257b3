package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"orcamento/go_backend/internal/app/http/middleware"
	"orcamento/go_backend/internal/domain/quote"
)

const (
	maxBodyBytes = 1 << 20
	dateLayout   = "2006-01-02"
)

type CreateQuoteRequest struct {
	Client struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	} `json:"client"`
	Quote struct {
		Subject  string `json:"subject"`
		Date     string `json:"date"` // YYYY-MM-DD, today when empty
		Duration string `json:"duration"`
	} `json:"quote"`
	Items []struct {
		Description string          `json:"description"`
		Value       decimal.Decimal `json:"value"`
	} `json:"items"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

func (h *Handlers) CreateQuote(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var (
		in  quote.Input
		err error
	)
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/json":
		in, err = h.decodeJSON(r)
	case "application/x-www-form-urlencoded", "multipart/form-data":
		in, err = h.decodeForm(r)
	default:
		http.Error(w, "unsupported content type", http.StatusUnsupportedMediaType)
		return
	}
	if err != nil {
		h.Log.Info("quote: bad request", zap.String("req", reqID), zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.Quotes.Issue(r.Context(), in)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, quote.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.FileName}))
	w.Header().Set("X-Quote-Number", res.Document.Meta.Number.String())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.PDF); err != nil {
		h.Log.Warn("quote: write response", zap.String("req", reqID), zap.Error(err))
	}
}

func (h *Handlers) decodeJSON(r *http.Request) (quote.Input, error) {
	var req CreateQuoteRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return quote.Input{}, fmt.Errorf("%w: bad request: %v", quote.ErrInvalidInput, err)
	}

	date, err := h.parseDate(req.Quote.Date)
	if err != nil {
		return quote.Input{}, err
	}
	in := quote.Input{
		Client:         quote.Client{Name: req.Client.Name, Address: req.Client.Address},
		Subject:        req.Quote.Subject,
		Date:           date,
		Duration:       req.Quote.Duration,
		TaxRate:        req.TaxRate,
		CommissionRate: req.CommissionRate,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, quote.LineItem{Description: it.Description, UnitValue: it.Value})
	}
	return in, nil
}

// decodeForm reads the HTML form. Item rows come as repeated
// item_description / item_value fields; fully blank rows are skipped.
func (h *Handlers) decodeForm(r *http.Request) (quote.Input, error) {
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return quote.Input{}, fmt.Errorf("%w: bad form: %v", quote.ErrInvalidInput, err)
	}

	date, err := h.parseDate(r.PostFormValue("date"))
	if err != nil {
		return quote.Input{}, err
	}
	tax, err := formDecimal(r, "tax_rate")
	if err != nil {
		return quote.Input{}, err
	}
	commission, err := formDecimal(r, "commission_rate")
	if err != nil {
		return quote.Input{}, err
	}

	in := quote.Input{
		Client: quote.Client{
			Name:    r.PostFormValue("client_name"),
			Address: r.PostFormValue("client_address"),
		},
		Subject:        r.PostFormValue("subject"),
		Date:           date,
		Duration:       r.PostFormValue("duration"),
		TaxRate:        tax,
		CommissionRate: commission,
	}

	descs := r.PostForm["item_description"]
	values := r.PostForm["item_value"]
	if len(descs) != len(values) {
		return quote.Input{}, fmt.Errorf("%w: %d item descriptions but %d values", quote.ErrInvalidInput, len(descs), len(values))
	}
	for i := range descs {
		desc, raw := strings.TrimSpace(descs[i]), strings.TrimSpace(values[i])
		if desc == "" && raw == "" {
			continue
		}
		v, err := parseDecimal("item_value", raw)
		if err != nil {
			return quote.Input{}, err
		}
		in.Items = append(in.Items, quote.LineItem{Description: desc, UnitValue: v})
	}
	return in, nil
}

func (h *Handlers) parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		now := h.Clock()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", quote.ErrInvalidInput, s)
	}
	return t, nil
}

func formDecimal(r *http.Request, key string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(r.PostFormValue(key))
	if raw == "" {
		return decimal.Zero, nil
	}
	return parseDecimal(key, raw)
}

// parseDecimal accepts both "1234.5" and the "1234,5" comma form.
func parseDecimal(key, raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", quote.ErrInvalidInput, key, raw)
	}
	return v, nil
}
