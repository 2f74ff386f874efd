package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

// HTMLOptions carries page-level details that are not part of the view.
type HTMLOptions struct {
	// SharePath is the no-script fallback for the share control.
	SharePath string
	// FramePath receives the host context from the page bootstrap and
	// answers with a replacement #app region.
	FramePath string
	AppURL    string

	// Share message bound to the share control.
	ShareText  string
	ComposeURL string
}

type htmlData struct {
	View
	ShareHref  string
	FramePath  string
	AppURL     string
	ShareText  string
	ComposeURL string
	// Resolve asks the bootstrap to post the host context back to FramePath.
	Resolve bool
}

func (v View) htmlData(opts HTMLOptions) htmlData {
	data := htmlData{
		View:       v,
		FramePath:  opts.FramePath,
		AppURL:     opts.AppURL,
		ShareText:  opts.ShareText,
		ComposeURL: opts.ComposeURL,
		Resolve:    !v.HostIdentity && opts.FramePath != "",
	}
	if v.ShareControl {
		sharePath := opts.SharePath
		if sharePath == "" {
			sharePath = "/share"
		}
		data.ShareHref = sharePath + "?" + url.Values{"fid": {strconv.FormatInt(v.FID, 10)}}.Encode()
	}
	return data
}

// WriteHTML renders the full page. The bootstrap script reads the host
// context, signals ready and binds the share control.
func (v View) WriteHTML(w io.Writer, opts HTMLOptions) error {
	if err := pageTemplate.ExecuteTemplate(w, "page", v.htmlData(opts)); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

// WriteFragment renders only the #app region, used to replace it wholesale.
func (v View) WriteFragment(w io.Writer, opts HTMLOptions) error {
	if err := pageTemplate.ExecuteTemplate(w, "content", v.htmlData(opts)); err != nil {
		return fmt.Errorf("rendering fragment: %w", err)
	}
	return nil
}
