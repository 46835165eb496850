package handler

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

type IndexHandler struct {
	tmpl *template.Template
	log  *zap.Logger
}

func NewIndexHandler(tmpl *template.Template, log *zap.Logger) *IndexHandler {
	return &IndexHandler{tmpl: tmpl, log: log}
}

func (i *IndexHandler) IndexPage(w http.ResponseWriter, r *http.Request) {
	render(w, i.tmpl, "index.html", map[string]interface{}{"Title": "Education Portal"}, i.log)
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
