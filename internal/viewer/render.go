package viewer

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
)

const (
	pageTitle      = "Product List"
	loadingMessage = "Loading products... ⏳"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTmpl = template.Must(
	template.New("page.html.tmpl").
		Funcs(template.FuncMap{"price": formatPrice}).
		ParseFS(templateFS, "templates/page.html.tmpl"),
)

type pageData struct {
	Title          string
	LoadingMessage string
	Loading        bool
	Failed         bool
	Err            string
	Products       []Product
}

func newPageData(s Snapshot) pageData {
	d := pageData{
		Title:          pageTitle,
		LoadingMessage: loadingMessage,
		Err:            s.Err,
	}
	switch s.Status {
	case StatusLoaded:
		d.Products = s.Products
	case StatusFailed:
		d.Failed = true
	default:
		d.Loading = true
	}
	return d
}

// RenderHTML writes the full page for s. Cards appear only when s is Loaded,
// one per product, in order.
func RenderHTML(w io.Writer, s Snapshot) error {
	return pageTmpl.Execute(w, newPageData(s))
}

// RenderText is the terminal rendering of the same three states.
func RenderText(w io.Writer, s Snapshot) error {
	d := newPageData(s)

	if _, err := fmt.Fprintf(w, "%s\n\n", d.Title); err != nil {
		return err
	}

	switch {
	case d.Loading:
		_, err := fmt.Fprintln(w, d.LoadingMessage)
		return err
	case d.Failed:
		_, err := fmt.Fprintf(w, "Error: %s\n", d.Err)
		return err
	}

	for _, p := range d.Products {
		if _, err := fmt.Fprintf(w, "- %s\n  Price: $%s\n  [ Buy Now ]\n", p.Name, formatPrice(p.Price)); err != nil {
			return err
		}
	}
	return nil
}

// formatPrice prints the shortest exact form: 1200, 25, 19.99.
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
