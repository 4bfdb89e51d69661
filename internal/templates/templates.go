// Package templates embeds the server-rendered HTML pages so handlers can
// parse them independent of the working directory.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var FS embed.FS

// Must parses the named page templates from the embedded set and panics
// on failure, mirroring template.Must over ParseFiles.
func Must(names ...string) *template.Template {
	return template.Must(template.ParseFS(FS, names...))
}
