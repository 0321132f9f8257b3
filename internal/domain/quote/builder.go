package quote

import (
	"context"
	"strings"
)

type Builder struct {
	Numbers *Numberer
}

func NewBuilder(numbers *Numberer) *Builder {
	return &Builder{Numbers: numbers}
}

// Build validates the input, computes totals and stamps a fresh quote
// number. The number is drawn only after validation passes.
func (b *Builder) Build(ctx context.Context, in Input) (Document, error) {
	name := strings.TrimSpace(in.Client.Name)
	if name == "" {
		return Document{}, invalidf("client name is required")
	}

	items := make([]LineItem, 0, len(in.Items))
	for i, it := range in.Items {
		desc := strings.TrimSpace(it.Description)
		if desc == "" {
			return Document{}, invalidf("item %d: description is required", i+1)
		}
		items = append(items, LineItem{Description: desc, UnitValue: it.UnitValue})
	}

	totals, err := ComputeTotals(items, in.TaxRate, in.CommissionRate)
	if err != nil {
		return Document{}, err
	}

	number, err := b.Numbers.Next(ctx)
	if err != nil {
		return Document{}, err
	}

	return Document{
		Client: Client{
			Name:    name,
			Address: strings.TrimSpace(in.Client.Address),
		},
		Meta: Meta{
			Subject:  strings.TrimSpace(in.Subject),
			Date:     in.Date,
			Duration: strings.TrimSpace(in.Duration),
			Number:   number,
		},
		Items:          items,
		Totals:         totals,
		TaxRate:        in.TaxRate,
		CommissionRate: in.CommissionRate,
	}, nil
}
