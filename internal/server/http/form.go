package http

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ekisa-team/loanrisk/internal/model"
	"github.com/ekisa-team/loanrisk/internal/service"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// errMissingInput is reported when any form field is absent or empty.
var errMissingInput = errors.New("Please fill in all the input fields.")

// missingModelKey is dispatched when the form carries no model field at all,
// so the page reads "Model 'None' not found.".
const missingModelKey = "None"

type (
	formField struct {
		Name  string
		Value string
	}

	formPage struct {
		Models        []service.ModelStatus
		Fields        []formField
		Model         string
		Error         string
		Prediction    int
		HasPrediction bool
	}
)

// FormHandler serves the HTML prediction form.
type FormHandler struct {
	service *service.Prediction
}

// NewFormHandler creates a new FormHandler and registers its routes.
func NewFormHandler(mux *http.ServeMux, service *service.Prediction) *FormHandler {
	h := &FormHandler{service: service}

	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /{$}", h.handleSubmit)

	return h
}

// handleIndex renders the empty form.
func (h *FormHandler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, h.page(nil))
}

// handleSubmit validates the form, dispatches the prediction and renders the
// outcome.
func (h *FormHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		page := h.page(nil)
		page.Error = "Invalid input: " + err.Error()
		h.render(w, page)
		return
	}

	page := h.page(r.PostForm)
	page.Model = r.PostForm.Get("model")

	features, err := ParseFeatures(r.PostForm)
	if err != nil {
		page.Error = "Invalid input: " + err.Error()
		h.render(w, page)
		return
	}

	key := page.Model
	if !r.PostForm.Has("model") {
		key = missingModelKey
	}

	out := h.service.Predict(key, features)
	if label, ok := out.Label(); ok {
		page.Prediction = label
		page.HasPrediction = true
	} else {
		page.Error = out.Message()
	}

	h.render(w, page)
}

func (h *FormHandler) page(values url.Values) formPage {
	columns := model.Columns()
	fields := make([]formField, 0, len(columns))
	for _, c := range columns {
		fields = append(fields, formField{Name: c, Value: values.Get(c)})
	}

	return formPage{
		Models: h.service.Models(),
		Fields: fields,
	}
}

func (h *FormHandler) render(w http.ResponseWriter, page formPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, page); err != nil {
		slog.Error("Failed to render form", "error", err)
	}
}

// ParseFeatures reads the five feature fields from a submitted form, in
// column order. Every field must be present and non-empty before any is
// converted.
func ParseFeatures(values url.Values) ([]float64, error) {
	columns := model.Columns()

	raw := make([]string, len(columns))
	for i, c := range columns {
		raw[i] = strings.TrimSpace(values.Get(c))
		if raw[i] == "" {
			return nil, errMissingInput
		}
	}

	features := make([]float64, len(columns))
	for i, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("could not convert string to float: '%s'", s)
		}
		features[i] = v
	}

	return features, nil
}
