package handler

import (
	"html/template"
	"net/http"

	"ams/internal/templates"
)

type IndexHandler struct {
	tmpl *template.Template
}

func NewIndexHandler() *IndexHandler {
	return &IndexHandler{tmpl: templates.Must("index.html")}
}

func (h *IndexHandler) IndexPage(w http.ResponseWriter, r *http.Request) {
	h.tmpl.Execute(w, nil)
}
