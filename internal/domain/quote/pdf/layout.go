package pdf

import (
	"orcamento/go_backend/internal/domain/quote"
)

// Fixed document text, shared by every generator so that both layouts
// carry the same sections in the same order.
const (
	Title                = "Orçamento de Serviço"
	ClientHeading        = "CLIENTE"
	QuoteHeading         = "ORÇAMENTO"
	ServiceColumn        = "Serviço a Realizar"
	ValueColumn          = "Valor Unitário"
	SubtotalLabel        = "SUBTOTAL"
	TotalLabel           = "TOTAL"
	ApprovalHeading      = "Aprovação de Serviço"
	SignatureRule        = "----------------------------------------"
	DateLayout           = "02/01/2006"
	DefaultApprover      = "Michael Sancivier"
	DefaultApproverTitle = "Administrador"
)

// Signature is the static approver printed in the footer.
type Signature struct {
	Name  string
	Title string
}

func DefaultSignature() Signature {
	return Signature{Name: DefaultApprover, Title: DefaultApproverTitle}
}

// Field is one "Label: value" line of a panel.
type Field struct {
	Label string
	Value string
}

type Row struct {
	Description string
	Value       string
}

// TotalLine is one line of the totals block.
type TotalLine struct {
	Label    string
	Value    string
	Emphasis bool
}

// View is a quote document reduced to the display strings of the layout.
type View struct {
	Title       string
	Number      string
	ClientPanel []Field
	QuotePanel  []Field
	Rows        []Row
	Totals      []TotalLine
	Signature   Signature
}

// NewView formats doc for display. It fails with quote.ErrRender when a
// field the layout cannot do without is missing.
func NewView(doc quote.Document, sig Signature) (View, error) {
	switch {
	case doc.Client.Name == "":
		return View{}, quote.RenderErrorf("document has no client name")
	case doc.Meta.Number == "":
		return View{}, quote.RenderErrorf("document has no quote number")
	case doc.Meta.Date.IsZero():
		return View{}, quote.RenderErrorf("document %s has no date", doc.Meta.Number)
	}
	if sig.Name == "" {
		sig.Name = DefaultApprover
	}
	if sig.Title == "" {
		sig.Title = DefaultApproverTitle
	}

	rows := make([]Row, 0, len(doc.Items))
	for _, it := range doc.Items {
		rows = append(rows, Row{Description: it.Description, Value: quote.FormatMoney(it.UnitValue)})
	}

	t := doc.Totals
	return View{
		Title:  Title,
		Number: doc.Meta.Number.String(),
		ClientPanel: []Field{
			{Label: "Nome", Value: doc.Client.Name},
			{Label: "Endereço", Value: doc.Client.Address},
		},
		QuotePanel: []Field{
			{Label: "Assunto", Value: doc.Meta.Subject},
			{Label: "Data", Value: doc.Meta.Date.Format(DateLayout)},
			{Label: "Duração", Value: doc.Meta.Duration},
			{Label: "Número", Value: doc.Meta.Number.String()},
		},
		Rows: rows,
		Totals: []TotalLine{
			{Label: SubtotalLabel, Value: quote.FormatMoney(t.Subtotal)},
			{Label: "IMPOSTOS (" + quote.FormatPercent(doc.TaxRate) + ")", Value: quote.FormatMoney(t.Tax)},
			{Label: "COMISSÃO (" + quote.FormatPercent(doc.CommissionRate) + ")", Value: quote.FormatMoney(t.Commission)},
			{Label: TotalLabel, Value: quote.FormatMoney(t.Total), Emphasis: true},
		},
		Signature: sig,
	}, nil
}
