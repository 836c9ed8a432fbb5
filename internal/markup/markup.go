// Package markup renders shopping-list items as HTML fragments.
//
// Every function here is pure: output depends only on the arguments, so the
// same input always yields byte-identical markup.
package markup

import (
	"embed"
	"encoding/json"
	"html/template"
	"strings"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
)

// DatastarURL is the client bundle referenced by the full page.
const DatastarURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

//go:embed templates/*.html
var templatesFS embed.FS

var tmpl = template.Must(template.New("markup").Funcs(template.FuncMap{
	"jsString": jsString,
}).ParseFS(templatesFS, "templates/*.html"))

// jsString quotes s as a JavaScript string literal for Datastar expressions.
func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

func render(name string, data any) string {
	var b strings.Builder
	// Templates are fixed at build time; an execution error is a bug in them.
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		panic("markup: " + name + ": " + err.Error())
	}
	return b.String()
}

// RenderItem renders one list entry. Editing items get an inline form with
// cancel and save; others get toggle, edit and delete controls.
func RenderItem(it model.Item) string {
	return render("item", it)
}

// RenderList concatenates RenderItem over items in order.
func RenderList(items []model.Item) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for _, it := range items {
		b.WriteString(RenderItem(it))
	}
	return b.String()
}

// RenderClearControl returns the clear-search button while a search is active.
func RenderClearControl(s *store.Store) string {
	if !s.SearchActive() {
		return ""
	}
	return render("clear-search", nil)
}

// RenderVisible renders the filtered list of s.
func RenderVisible(s *store.Store) string {
	return RenderList(store.VisibleItems(s))
}

// RenderListRegion wraps the visible list in its patch target element.
func RenderListRegion(s *store.Store) string {
	return render("list-region", template.HTML(RenderVisible(s)))
}

// RenderClearRegion wraps the clear control in its patch target element.
func RenderClearRegion(s *store.Store) string {
	return render("clear-region", template.HTML(RenderClearControl(s)))
}

type pageData struct {
	DatastarURL   string
	HideCompleted bool
	List          template.HTML
	ClearControl  template.HTML
}

// RenderPage renders the full document around the current list.
func RenderPage(s *store.Store) (string, error) {
	data := pageData{
		DatastarURL:   DatastarURL,
		HideCompleted: s.HideCompleted(),
		List:          template.HTML(RenderVisible(s)),
		ClearControl:  template.HTML(RenderClearControl(s)),
	}
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, "page", data); err != nil {
		return "", err
	}
	return b.String(), nil
}
