// Package render maps monitored items to dashboard card markup.
//
// Cards are built in two steps: an Item is first turned into a CardView,
// a flat set of display strings, which is then executed through an
// embedded html/template. All values are contextually escaped, so names,
// URLs and error messages from the snapshot cannot inject markup.
package render

import (
	"embed"
	"html/template"
	"strings"

	"github.com/seckatie/statusboard/internal/core"
	"github.com/seckatie/statusboard/internal/core/status"
)

//go:embed templates/*.html
var templatesFS embed.FS

var cardTmpl = template.Must(template.ParseFS(templatesFS, "templates/card.html"))

// CardView is the display form of one monitored item.
type CardView struct {
	Name        string
	SearchKey   string // lowercased name, matched by the search box
	State       string // effective state, matched by the state filter
	BadgeClass  string
	BadgeLabel  string
	URL         string
	LastChecked string
	LastChanged string
	Score       string
	Threshold   string
	Error       string
	Thumbs      []Thumb
}

// Thumb is a screenshot or diff thumbnail.
type Thumb struct {
	Src     string
	Alt     string
	Caption string
}

// Renderer builds cards. The zero value formats timestamps in local time
// and resolves images under core.ImagesDir.
type Renderer struct {
	Formatter status.Formatter
	// ImagePrefix is prepended to screenshot and diff file names.
	ImagePrefix string
}

// New returns a Renderer using the given formatter and the default image prefix.
func New(f status.Formatter) *Renderer {
	return &Renderer{Formatter: f, ImagePrefix: core.ImagesDir + "/"}
}

// View builds the CardView for an item.
func (r *Renderer) View(item status.Item) CardView {
	v := CardView{
		Name:        item.Name,
		SearchKey:   strings.ToLower(item.Name),
		State:       item.State.String(),
		BadgeClass:  status.BadgeClass(item.State),
		BadgeLabel:  item.State.Label(),
		URL:         item.URL,
		LastChecked: r.Formatter.Timestamp(item.LastChecked),
		LastChanged: r.Formatter.Timestamp(item.LastChanged),
		Score:       status.FormatScore(item.Score),
		Threshold:   status.FormatThreshold(item.Threshold),
		Error:       item.Error,
	}
	if item.LatestScreenshot != "" {
		v.Thumbs = append(v.Thumbs, Thumb{
			Src:     r.imagePath(item.LatestScreenshot),
			Alt:     "latest screenshot",
			Caption: "Latest screenshot",
		})
	}
	if item.LatestDiff != "" {
		v.Thumbs = append(v.Thumbs, Thumb{
			Src:     r.imagePath(item.LatestDiff),
			Alt:     "latest diff",
			Caption: "Latest diff",
		})
	}
	return v
}

func (r *Renderer) imagePath(name string) string {
	prefix := r.ImagePrefix
	if prefix == "" {
		prefix = core.ImagesDir + "/"
	}
	return prefix + name
}

// Card renders a single item.
func (r *Renderer) Card(item status.Item) (template.HTML, error) {
	var b strings.Builder
	if err := cardTmpl.ExecuteTemplate(&b, "card", r.View(item)); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

// Cards renders every item in order and concatenates the result.
func (r *Renderer) Cards(items []status.Item) (template.HTML, error) {
	var b strings.Builder
	for _, item := range items {
		if err := cardTmpl.ExecuteTemplate(&b, "card", r.View(item)); err != nil {
			return "", err
		}
	}
	return template.HTML(b.String()), nil
}
