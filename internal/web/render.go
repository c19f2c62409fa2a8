// Package web serves the server-rendered site: the public portfolio pages
// and the admin panel.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Templates parses the embedded page templates. Each page is addressed by
// its file name, for example "home.html".
func Templates() (*template.Template, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"split": splitList,
		"year":  func() int { return time.Now().Year() },
	}).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// LoadingPage renders the page shown while the admin session is resolving.
func LoadingPage(t *template.Template) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "loading.html", nil); err != nil {
		return nil, fmt.Errorf("render loading page: %w", err)
	}
	return buf.Bytes(), nil
}

// splitList turns "Go, Postgres ,Redis" into its trimmed, non-empty items.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
