package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/form.gohtml
var formFS embed.FS

var formTemplate = template.Must(template.ParseFS(formFS, "templates/form.gohtml"))

const formRows = 5

func (h *Handlers) QuoteForm(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Today string
		Rows  []struct{}
	}{
		Today: h.Clock().Format(dateLayout),
		Rows:  make([]struct{}, formRows),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, data); err != nil {
		h.Log.Error("quote form: render", zap.Error(err))
	}
}
