package gofpdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"orcamento/go_backend/internal/domain/quote"
	"orcamento/go_backend/internal/domain/quote/pdf"
)

const (
	font      = "Helvetica"
	pageWidth = 190.0
	descWidth = 150.0
	valWidth  = 40.0

	rowHeight  = 8.0
	wrapHeight = 6.0
)

type Generator struct {
	sig      pdf.Signature
	compress bool
	log      *zap.Logger
}

type Option func(*Generator)

func WithSignature(sig pdf.Signature) Option {
	return func(g *Generator) { g.sig = sig }
}

// WithCompression toggles stream compression. Uncompressed output keeps
// the page text readable in the raw bytes.
func WithCompression(on bool) Option {
	return func(g *Generator) { g.compress = on }
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.log = l }
}

func New(opts ...Option) *Generator {
	g := &Generator{sig: pdf.DefaultSignature(), compress: true, log: zap.NewNop()}
	for _, o := range opts {
		o(g)
	}
	return g
}

var _ pdf.Generator = (*Generator)(nil)

func (g *Generator) Generate(_ context.Context, doc quote.Document) ([]byte, error) {
	v, err := pdf.NewView(doc, g.sig)
	if err != nil {
		return nil, err
	}

	d := &drawer{enc: charmap.Windows1252.NewEncoder()}
	d.f = gofpdf.New("P", "mm", "A4", "")
	d.f.SetCompression(g.compress)
	d.f.SetCatalogSort(true)
	d.f.SetCreationDate(doc.Meta.Date)
	d.f.SetTitle(d.text(v.Title+" "+v.Number), false)
	d.f.SetAuthor(d.text(v.Signature.Name), false)
	d.f.AddPage()

	d.header(v)
	d.panel(pdf.ClientHeading, v.ClientPanel)
	d.f.Ln(5)
	d.panel(pdf.QuoteHeading, v.QuotePanel)
	d.f.Ln(10)
	d.table(v.Rows)
	d.f.Ln(10)
	d.totals(v.Totals)
	d.footer(v.Signature)

	if d.err != nil {
		g.log.Warn("quote pdf: encode failed", zap.String("number", v.Number), zap.Error(d.err))
		return nil, quote.RenderErrorf("%s: %w", v.Number, d.err)
	}
	if err := d.f.Error(); err != nil {
		g.log.Warn("quote pdf: layout failed", zap.String("number", v.Number), zap.Error(err))
		return nil, quote.RenderErrorf("%s: %w", v.Number, err)
	}

	var buf bytes.Buffer
	if err := d.f.Output(&buf); err != nil {
		g.log.Error("quote pdf: output failed", zap.String("number", v.Number), zap.Error(err))
		return nil, quote.RenderErrorf("%s: %w", v.Number, err)
	}
	return buf.Bytes(), nil
}

// drawer writes sections top to bottom. The first encoding error sticks
// and later cells are skipped.
type drawer struct {
	f   *gofpdf.Fpdf
	enc interface{ String(string) (string, error) }
	err error
}

// text converts s to the Windows-1252 bytes the core fonts expect.
func (d *drawer) text(s string) string {
	if d.err != nil {
		return ""
	}
	out, err := d.enc.String(s)
	if err != nil {
		d.err = fmt.Errorf("text %q is not representable in the document font: %w", s, err)
		return ""
	}
	return out
}

func (d *drawer) cell(w, h float64, s, border string, ln int, align string) {
	t := d.text(s)
	if d.err != nil {
		return
	}
	d.f.CellFormat(w, h, t, border, ln, align, false, 0, "")
}

func (d *drawer) header(v pdf.View) {
	d.f.SetFont(font, "B", 24)
	d.cell(0, 10, v.Title, "", 1, "C")
	d.f.Ln(5)
	y := d.f.GetY()
	d.f.Line(10, y, 10+pageWidth, y)
	d.f.Ln(10)
}

func (d *drawer) panel(heading string, fields []pdf.Field) {
	d.f.SetFont(font, "B", 14)
	d.cell(0, 8, heading, "", 1, "")
	d.f.SetFont(font, "", 12)
	for _, fl := range fields {
		d.cell(0, 6, fl.Label+": "+fl.Value, "", 1, "")
	}
}

func (d *drawer) table(rows []pdf.Row) {
	d.f.SetFont(font, "B", 12)
	d.cell(descWidth, 10, pdf.ServiceColumn, "1", 0, "")
	d.cell(valWidth, 10, pdf.ValueColumn, "1", 1, "R")

	d.f.SetFont(font, "", 12)
	for _, r := range rows {
		d.row(r)
	}
}

// row wraps the description inside its column. The value cell takes the
// height of the wrapped text and the row never splits across pages.
func (d *drawer) row(r pdf.Row) {
	desc := d.text(r.Description)
	if d.err != nil {
		return
	}
	lines := d.f.SplitLines([]byte(desc), descWidth)
	if len(lines) == 0 {
		lines = [][]byte{nil}
	}
	lh := rowHeight
	if len(lines) > 1 {
		lh = wrapHeight
	}
	h := lh * float64(len(lines))

	_, pageH := d.f.GetPageSize()
	_, _, _, bottom := d.f.GetMargins()
	if d.f.GetY()+h > pageH-bottom {
		d.f.AddPage()
	}

	x, y := d.f.GetXY()
	d.f.Rect(x, y, descWidth, h, "D")
	for i, l := range lines {
		d.f.SetXY(x, y+float64(i)*lh)
		d.f.CellFormat(descWidth, lh, string(l), "", 0, "", false, 0, "")
	}
	d.f.SetXY(x+descWidth, y)
	d.cell(valWidth, h, r.Value, "1", 1, "R")
}

func (d *drawer) totals(lines []pdf.TotalLine) {
	for _, l := range lines {
		h := 8.0
		d.f.SetFont(font, "B", 12)
		if l.Emphasis {
			h = 10
			d.f.SetFont(font, "B", 14)
		}
		d.cell(descWidth, h, l.Label, "", 0, "R")
		d.cell(valWidth, h, l.Value, "", 1, "R")
	}
}

func (d *drawer) footer(sig pdf.Signature) {
	d.f.Ln(20)
	d.f.SetFont(font, "", 12)
	for _, s := range []string{pdf.ApprovalHeading, pdf.SignatureRule, sig.Name, sig.Title} {
		d.cell(0, 5, s, "", 1, "C")
	}
}
