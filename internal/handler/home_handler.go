package handler

import (
	"html/template"
	"net/http"

	"ams/internal/templates"
)

type HomeHandler struct {
	tmpl *template.Template
}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{tmpl: templates.Must("home.html")}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	// Registered at "/", which matches every unrouted path.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.tmpl.Execute(w, nil)
}
