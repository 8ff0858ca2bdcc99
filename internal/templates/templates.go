package templates

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed *.html
var pages embed.FS

var (
	tmpl   = template.Must(template.ParseFS(pages, "*.html"))
	commit = "dev"
)

type pageData struct {
	GameID string
	Kind   string
	Commit string
}

// SetCommit sets the build commit shown in page footers
func SetCommit(c string) {
	if c != "" {
		commit = c
	}
}

// WriteHomeHTML serves the home page template
func WriteHomeHTML(w http.ResponseWriter) {
	write(w, "home.html", pageData{})
}

// WriteGameHTML serves the page of the given game kind for one session
func WriteGameHTML(w http.ResponseWriter, kind, gameID string) {
	write(w, kind+".html", pageData{GameID: gameID, Kind: kind})
}

func write(w http.ResponseWriter, name string, data pageData) {
	data.Commit = commit
	if tmpl.Lookup(name) == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_ = tmpl.ExecuteTemplate(w, name, data)
}
