package server

import (
	"bytes"
	_ "embed"
	"log"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed about.md
var aboutMarkdown []byte

// handleAbout serves the data-methodology page, rendered from the
// embedded Markdown at request time.
func (s *Server) handleAbout(w http.ResponseWriter, _ *http.Request) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	var body bytes.Buffer
	if err := md.Convert(aboutMarkdown, &body); err != nil {
		log.Printf("server: rendering about page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<!DOCTYPE html>\n<html><head><title>About the data</title></head><body>\n"))
	w.Write(body.Bytes())
	w.Write([]byte("\n</body></html>\n"))
}
