package dashboard

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Element ids the host page must provide.
const (
	LastUpdatedID = "lastUpdated"
	SummaryID     = "summary"
	GridID        = "grid"
	SearchID      = "search"
	FilterID      = "filter"
)

var (
	// ErrMissingElement is returned when the host page lacks a required element.
	ErrMissingElement = errors.New("element not found")
	// ErrUnknownOption is returned when a selector is set to a value it does not offer.
	ErrUnknownOption = errors.New("unknown option")
)

// Target is the document the dashboard renders into.
type Target interface {
	Has(id string) bool
	SetText(id, text string) error
	SetHTML(id string, fragment template.HTML) error
	Value(id string) string
	SetValue(id, value string) error
	// Cards returns the cards currently mounted in the grid.
	Cards() []Card
}

// Card is a rendered card as seen by the filter.
type Card interface {
	// Data returns the card's data-<key> attribute.
	Data(key string) string
	SetVisible(visible bool)
	Visible() bool
}

// Document is a Target backed by a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

// ParseDocument parses a host page.
func ParseDocument(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse host page: %w", err)
	}
	return &Document{doc: doc}, nil
}

func (d *Document) element(id string) (*goquery.Selection, error) {
	sel := d.doc.Find("#" + id).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: #%s", ErrMissingElement, id)
	}
	return sel, nil
}

// Has reports whether the page has an element with the given id.
func (d *Document) Has(id string) bool {
	_, err := d.element(id)
	return err == nil
}

// SetText replaces the element's content with text.
func (d *Document) SetText(id, text string) error {
	sel, err := d.element(id)
	if err != nil {
		return err
	}
	sel.SetText(text)
	return nil
}

// SetHTML replaces the element's content with fragment.
func (d *Document) SetHTML(id string, fragment template.HTML) error {
	sel, err := d.element(id)
	if err != nil {
		return err
	}
	sel.SetHtml(string(fragment))
	return nil
}

// Value returns the current value of an input or select element.
// Missing elements read as empty.
func (d *Document) Value(id string) string {
	sel, err := d.element(id)
	if err != nil {
		return ""
	}
	if goquery.NodeName(sel) != "select" {
		return sel.AttrOr("value", "")
	}
	opt := sel.Find("option[selected]").First()
	if opt.Length() == 0 {
		opt = sel.Find("option").First()
	}
	return optionValue(opt)
}

// SetValue sets the value of an input, or selects the matching option of a select.
func (d *Document) SetValue(id, value string) error {
	sel, err := d.element(id)
	if err != nil {
		return err
	}
	if goquery.NodeName(sel) != "select" {
		sel.SetAttr("value", value)
		return nil
	}

	var match *goquery.Selection
	sel.Find("option").EachWithBreak(func(_ int, opt *goquery.Selection) bool {
		if optionValue(opt) == value {
			match = opt
			return false
		}
		return true
	})
	if match == nil {
		return fmt.Errorf("%w: #%s has no option %q", ErrUnknownOption, id, value)
	}
	sel.Find("option").RemoveAttr("selected")
	match.SetAttr("selected", "selected")
	return nil
}

// option values default to their text, as in the browser.
func optionValue(opt *goquery.Selection) string {
	if v, ok := opt.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(opt.Text())
}

// Cards returns the .card elements inside the grid.
func (d *Document) Cards() []Card {
	var cards []Card
	d.doc.Find("#" + GridID + " .card").Each(func(_ int, s *goquery.Selection) {
		cards = append(cards, docCard{sel: s})
	})
	return cards
}

// InnerHTML returns the markup inside an element.
func (d *Document) InnerHTML(id string) (string, error) {
	sel, err := d.element(id)
	if err != nil {
		return "", err
	}
	return sel.Html()
}

// Text returns the text content of an element, or "" when it is missing.
func (d *Document) Text(id string) string {
	sel, err := d.element(id)
	if err != nil {
		return ""
	}
	return sel.Text()
}

// Remove deletes every element matching selector.
func (d *Document) Remove(selector string) {
	d.doc.Find(selector).Remove()
}

// Render writes the whole page.
func (d *Document) Render(w io.Writer) error {
	html, err := d.doc.Html()
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	_, err = io.WriteString(w, html)
	return err
}

type docCard struct {
	sel *goquery.Selection
}

func (c docCard) Data(key string) string {
	return c.sel.AttrOr("data-"+key, "")
}

func (c docCard) SetVisible(visible bool) {
	if visible {
		c.sel.RemoveAttr("style")
		return
	}
	c.sel.SetAttr("style", "display: none")
}

func (c docCard) Visible() bool {
	style := strings.ReplaceAll(c.sel.AttrOr("style", ""), " ", "")
	return !strings.Contains(style, "display:none")
}
