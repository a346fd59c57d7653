// Path: internal/listing/detail.go
package listing

import (
	"io"
	"text/template"

	"article-browser/internal/domain"
)

// DetailView holds the fields shown in the article overlay.
type DetailView struct {
	Title   string
	Author  string
	Summary string
	Content string
	URL     string
}

var detailTemplate = template.Must(template.New("detail").Parse(`{{.Title}}
Author: {{.Author}}
{{- if .Summary}}
Summary: {{.Summary}}
{{- end}}

{{.Content}}
{{- if .URL}}

{{.URL}}
{{- end}}
`))

// PresentDetail maps the selection to the overlay fields. It reports false
// when there is no selection or the overlay is closed.
func PresentDetail(article *domain.Article, open bool) (DetailView, bool) {
	if article == nil || !open {
		return DetailView{}, false
	}

	title := article.Title
	if title == "" {
		title = domain.UntitledPlaceholder
	}
	return DetailView{
		Title:   title,
		Author:  article.DisplayAuthor(),
		Summary: article.Summary,
		Content: article.Content,
		URL:     article.URL,
	}, true
}

// RenderDetail writes the overlay as plain text.
func RenderDetail(w io.Writer, view DetailView) error {
	return detailTemplate.Execute(w, view)
}
