package htmlpdf

import (
	"bytes"
	"embed"
	"html/template"

	"orcamento/go_backend/internal/domain/quote"
	"orcamento/go_backend/internal/domain/quote/pdf"
)

//go:embed templates/quote.gohtml
var templateFS embed.FS

var quoteTemplate = template.Must(template.ParseFS(templateFS, "templates/quote.gohtml"))

// markupData is what the template sees: the view plus the fixed labels.
type markupData struct {
	pdf.View
	ClientHeading   string
	QuoteHeading    string
	ServiceColumn   string
	ValueColumn     string
	ApprovalHeading string
	SignatureRule   string
}

// Markup executes the quote template for doc. User supplied text is
// HTML-escaped by the template engine.
func Markup(doc quote.Document, sig pdf.Signature) ([]byte, error) {
	v, err := pdf.NewView(doc, sig)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = quoteTemplate.Execute(&buf, markupData{
		View:            v,
		ClientHeading:   pdf.ClientHeading,
		QuoteHeading:    pdf.QuoteHeading,
		ServiceColumn:   pdf.ServiceColumn,
		ValueColumn:     pdf.ValueColumn,
		ApprovalHeading: pdf.ApprovalHeading,
		SignatureRule:   pdf.SignatureRule,
	})
	if err != nil {
		return nil, quote.RenderErrorf("template %s: %w", v.Number, err)
	}
	return buf.Bytes(), nil
}
