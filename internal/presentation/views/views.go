// Package views renders the lobby as server-side HTML. All user text goes
// through html/template's contextual escaping.
package views

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/hilthontt/chatlobby/internal/domain"
	"github.com/hilthontt/chatlobby/internal/lobby"
	"github.com/hilthontt/chatlobby/internal/presentation/humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

type Modal string

const (
	ModalNone       Modal = ""
	ModalUsername   Modal = "username"
	ModalCreateRoom Modal = "create"
)

// Page is one full render of the lobby.
type Page struct {
	State lobby.State
	Now   time.Time
	Modal Modal
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes into a buffer first so a template error never leaves a
// half-written page.
func (r *Renderer) Render(w io.Writer, page Page) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page", page); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"relativeTime": humanize.RelativeTime,
		"participants": humanize.Participants,
		"clock":        humanize.MessageTime,
		"privacyLabel": func(p domain.Privacy) string {
			return cases.Title(language.English).String(string(p))
		},
		"privacyIcon": func(p domain.Privacy) string {
			if p.IsPrivate() {
				return "🔒"
			}
			return "🌐"
		},
		"isLast": func(i int, list []lobby.MessageView) bool {
			return i == len(list)-1
		},
	}
}
