// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"embed"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

//go:embed templates
var templatesFS embed.FS

// View names one page template and the data it is executed with.
type View struct {
	Name string
	Data any
}

// Renderer writes the two representations of every account operation: an
// HTML page or an exported JSON/XML document.
type Renderer interface {
	Page(w http.ResponseWriter, r *http.Request, status int, view View)
	Export(w http.ResponseWriter, r *http.Request, status int, payload any)
}

// pageLayout is the data of the outer layout around a full page.
type pageLayout struct {
	Title   string
	Warning string
	Notice  string
	Body    template.HTML
}

type templateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses the embedded templates. It panics on a broken
// template since they are compiled into the binary.
func NewTemplateRenderer() Renderer {
	funcs := template.FuncMap{
		"ago": humanize.Time,
		"agoPtr": func(t *time.Time) string {
			if t == nil {
				return "never"
			}
			return humanize.Time(*t)
		},
		"count":   func(n int) string { return humanize.Comma(int64(n)) },
		"ordinal": humanize.Ordinal,
		"plural":  english.PluralWord,
	}

	return &templateRenderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html", "templates/accounts/*.html")),
	}
}

// Page renders view. Requests made with XMLHttpRequest get the bare view,
// everything else gets it inside the layout together with any pending flash
// messages from the session.
func (t *templateRenderer) Page(w http.ResponseWriter, r *http.Request, status int, view View) {
	log := logger.FromRequest(r)

	var body bytes.Buffer
	if err := t.templates.ExecuteTemplate(&body, view.Name, view.Data); err != nil {
		log.Err(err).Str("func", "templateRenderer.Page").Str("view", view.Name).Msg("failed to render view")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if isXHR(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write(body.Bytes())
		return
	}

	layout := pageLayout{
		Title: strings.TrimPrefix(view.Name, "accounts/"),
		Body:  template.HTML(body.String()),
	}
	if session := sessionFrom(r); session != nil {
		layout.Warning, _ = session.Take(models.FlashWarning)
		layout.Notice, _ = session.Take(models.FlashNotice)
	}

	var page bytes.Buffer
	if err := t.templates.ExecuteTemplate(&page, "layout", layout); err != nil {
		log.Err(err).Str("func", "templateRenderer.Page").Msg("failed to render layout")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(page.Bytes())
}

// Export writes payload as XML when the client accepts xml and as JSON
// otherwise. Account slices are wrapped into [models.AccountList].
func (t *templateRenderer) Export(w http.ResponseWriter, r *http.Request, status int, payload any) {
	log := logger.FromRequest(r)

	if accounts, ok := payload.([]models.Account); ok {
		if accounts == nil {
			accounts = []models.Account{}
		}
		payload = models.AccountList{Accounts: accounts}
	}

	var (
		data        []byte
		err         error
		contentType string
	)
	if wantsXML(r) {
		data, err = xml.MarshalIndent(payload, "", "  ")
		data = append([]byte(xml.Header), data...)
		contentType = "application/xml; charset=utf-8"
	} else {
		data, err = json.Marshal(payload)
		contentType = "application/json"
	}
	if err != nil {
		log.Err(err).Str("func", "templateRenderer.Export").Msg("failed to encode export")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	w.Write(data)
}

// isExport reports whether the client asked for the data representation.
func isExport(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") || wantsXML(r)
}

func wantsXML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/xml") || strings.Contains(accept, "text/xml")
}

func isXHR(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}

// reloadScript is the XHR answer to a request for an account that is gone.
const reloadScript = "window.location.reload();"

func writeScript(w http.ResponseWriter, script string) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, script)
}
