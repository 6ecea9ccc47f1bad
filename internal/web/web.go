// Package web embeds the HTML templates and builds the views engine.
package web

import (
	"embed"
	"io/fs"
	"log"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templatesFS embed.FS

// Engine returns the views engine backed by the embedded templates.
func Engine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		log.Fatalf("templates subtree missing: %v", err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
