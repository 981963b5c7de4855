// Package render draws gallery items as terminal cards, in a grid or as a
// list. Both layouts show the same fields.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yoockh/showcase/internal/catalog"
	"github.com/yoockh/showcase/internal/gallery"
	"github.com/yoockh/showcase/internal/models"
)

type Mode string

const (
	ModeGrid Mode = "grid"
	ModeList Mode = "list"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeGrid, "":
		return ModeGrid, nil
	case ModeList:
		return ModeList, nil
	}
	return "", fmt.Errorf("unknown view mode %q (want grid or list)", s)
}

const (
	noImage   = "[no image]"
	cardWidth = 34
)

// Card is what a single item shows, whatever the layout.
type Card struct {
	Kind     models.Kind
	Title    string
	Subtitle string
	Badge    string
	Image    string
	Extra    string
}

type CardFunc func(gallery.Item) Card

type Renderer struct {
	mode  Mode
	width int
	cards map[models.Kind]CardFunc

	title  lipgloss.Style
	muted  lipgloss.Style
	badge  lipgloss.Style
	border lipgloss.Style
}

// New renders for a terminal width columns wide. The default card for
// every kind can be replaced with Register.
func New(mode Mode, width int) *Renderer {
	if width <= 0 {
		width = 100
	}
	r := &Renderer{
		mode:  mode,
		width: width,
		cards: map[models.Kind]CardFunc{},

		title: lipgloss.NewStyle().Bold(true),
		muted: lipgloss.NewStyle().Faint(true),
		badge: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(cardWidth),
	}
	r.Register(models.KindInternship, internshipCard)
	return r
}

func (r *Renderer) Mode() Mode { return r.mode }

func (r *Renderer) Register(kind models.Kind, fn CardFunc) { r.cards[kind] = fn }

// Card builds the card of it with the function registered for its kind.
func (r *Renderer) Card(it gallery.Item) Card {
	fn, ok := r.cards[it.DataType]
	if !ok {
		fn = defaultCard
	}
	c := fn(it)
	if c.Title == "" {
		c.Title = "Untitled"
	}
	if c.Image == "" {
		c.Image = noImage
	}
	return c
}

func defaultCard(it gallery.Item) Card {
	return Card{
		Kind:     it.DataType,
		Title:    it.Title,
		Subtitle: it.Subtitle,
		Badge:    it.Facet,
		Image:    it.Image,
	}
}

func internshipCard(it gallery.Item) Card {
	c := defaultCard(it)
	if in, ok := it.Record.(*models.Internship); ok {
		var extra []string
		if in.Mode != "" {
			extra = append(extra, in.Mode)
		}
		if len(in.Skills) > 0 {
			extra = append(extra, strings.Join(in.Skills, ", "))
		}
		c.Extra = strings.Join(extra, " | ")
	}
	return c
}

func (r *Renderer) Render(items []gallery.Item) string {
	if len(items) == 0 {
		return r.muted.Render("No items found.") + "\n"
	}
	if r.mode == ModeList {
		return r.list(items)
	}
	return r.grid(items)
}

func (r *Renderer) grid(items []gallery.Item) string {
	perRow := r.width / (cardWidth + 4)
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for start := 0; start < len(items); start += perRow {
		end := min(start+perRow, len(items))
		boxes := make([]string, 0, end-start)
		for _, it := range items[start:end] {
			boxes = append(boxes, r.border.Render(r.cardBody(r.Card(it))))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return strings.Join(rows, "\n") + "\n"
}

func (r *Renderer) cardBody(c Card) string {
	lines := []string{r.title.Render(c.Title)}
	if c.Subtitle != "" {
		lines = append(lines, c.Subtitle)
	}
	if c.Badge != "" {
		lines = append(lines, r.badge.Render("["+c.Badge+"]"))
	}
	if c.Extra != "" {
		lines = append(lines, c.Extra)
	}
	lines = append(lines, r.muted.Render(c.Image))
	return strings.Join(lines, "\n")
}

func (r *Renderer) list(items []gallery.Item) string {
	var sb strings.Builder
	for _, it := range items {
		c := r.Card(it)
		parts := []string{r.title.Render(c.Title)}
		if c.Subtitle != "" {
			parts = append(parts, c.Subtitle)
		}
		if c.Badge != "" {
			parts = append(parts, r.badge.Render("["+c.Badge+"]"))
		}
		if c.Extra != "" {
			parts = append(parts, c.Extra)
		}
		parts = append(parts, r.muted.Render(c.Image))
		sb.WriteString(strings.Join(parts, "  ·  "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Stats renders the summary line shown above a collection, with the per
// value counts of facet.
func (r *Renderer) Stats(s catalog.Summary, facet string) string {
	parts := []string{fmt.Sprintf("%d total", s.Total), fmt.Sprintf("%d shown", s.Filtered)}

	counts := s.ByFacet[facet]
	vals := make([]string, 0, len(counts))
	for v := range counts {
		vals = append(vals, v)
	}
	sort.Strings(vals)
	for _, v := range vals {
		parts = append(parts, fmt.Sprintf("%s %d", v, counts[v]))
	}
	return r.muted.Render(strings.Join(parts, " · ")) + "\n"
}
