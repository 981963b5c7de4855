package gallery

import (
	"time"

	"github.com/yoockh/showcase/internal/catalog"
	"github.com/yoockh/showcase/internal/models"
)

// Item is one record of any kind in the merged gallery. DataType says which
// collection it came from; it only exists on the client.
type Item struct {
	DataType  models.Kind `json:"dataType"`
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Subtitle  string      `json:"subtitle,omitempty"`
	Facet     string      `json:"facet,omitempty"`
	Image     string      `json:"image,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	Record    any         `json:"record"`
}

// Describe tags a record with its kind and pulls out the fields every card
// shows.
func Describe(e models.Entity) Item {
	it := Item{
		DataType: e.Kind(),
		ID:       e.GetID().Hex(),
		Image:    e.ImagePath(),
		Record:   e,
	}
	switch r := e.(type) {
	case *models.Certificate:
		it.Title, it.Subtitle, it.Facet, it.CreatedAt = r.Title, r.Issuer, r.Category, r.CreatedAt
	case *models.Badge:
		it.Title, it.Subtitle, it.Facet, it.CreatedAt = r.Title, r.Issuer, r.Category, r.CreatedAt
	case *models.Internship:
		it.Title, it.Subtitle, it.Facet, it.CreatedAt = r.Company, r.Role, r.Status, r.CreatedAt
	case *models.Contribution:
		it.Title, it.Subtitle, it.Facet, it.CreatedAt = r.Title, r.Event, r.Type, r.CreatedAt
	case *models.ContributionCert:
		sub := r.Event
		if sub == "" {
			sub = r.Issuer
		}
		// empty when neither is set; the placeholder is left to rendering
		title := r.Name
		if title == "" {
			title = r.Title
		}
		it.Title, it.Subtitle, it.Facet, it.CreatedAt = title, sub, r.Type, r.CreatedAt
	}
	return it
}

// ItemSchema filters the merged gallery. The "dataType" facet narrows it to
// one kind.
var ItemSchema = catalog.Schema[Item]{
	Search: []catalog.Field[Item]{
		{Name: "title", Value: func(i Item) string { return i.Title }},
		{Name: "subtitle", Value: func(i Item) string { return i.Subtitle }},
		{Name: "facet", Value: func(i Item) string { return i.Facet }},
	},
	Facets: []catalog.Field[Item]{
		{Name: "dataType", Value: func(i Item) string { return string(i.DataType) }},
		{Name: "facet", Value: func(i Item) string { return i.Facet }},
	},
}
