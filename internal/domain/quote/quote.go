package quote

import (
	"time"

	"github.com/shopspring/decimal"
)

type Document struct {
	Client Client
	Meta   Meta
	Items  []LineItem
	Totals Totals

	TaxRate        decimal.Decimal
	CommissionRate decimal.Decimal
}

type Client struct {
	Name    string
	Address string
}

type LineItem struct {
	Description string
	UnitValue   decimal.Decimal
}

type Meta struct {
	Subject  string
	Date     time.Time
	Duration string
	Number   Number
}

type Totals struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Commission decimal.Decimal
	Total      decimal.Decimal
}

// Input is the validated form record a quote is built from.
type Input struct {
	Client   Client
	Subject  string
	Date     time.Time
	Duration string
	Items    []LineItem

	TaxRate        decimal.Decimal
	CommissionRate decimal.Decimal
}
