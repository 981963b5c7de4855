package catalog

import (
	"strings"

	"github.com/yoockh/showcase/internal/models"
)

var Certificates = Schema[models.Certificate]{
	Search: []Field[models.Certificate]{
		{"title", func(c models.Certificate) string { return c.Title }},
		{"issuer", func(c models.Certificate) string { return c.Issuer }},
		{"category", func(c models.Certificate) string { return c.Category }},
	},
	Facets: []Field[models.Certificate]{
		{"category", func(c models.Certificate) string { return c.Category }},
	},
}

var Badges = Schema[models.Badge]{
	Search: []Field[models.Badge]{
		{"title", func(b models.Badge) string { return b.Title }},
		{"issuer", func(b models.Badge) string { return b.Issuer }},
		{"category", func(b models.Badge) string { return b.Category }},
	},
	Facets: []Field[models.Badge]{
		{"category", func(b models.Badge) string { return b.Category }},
	},
}

var Internships = Schema[models.Internship]{
	Search: []Field[models.Internship]{
		{"company", func(i models.Internship) string { return i.Company }},
		{"role", func(i models.Internship) string { return i.Role }},
		{"duration", func(i models.Internship) string { return i.Duration }},
		{"skills", func(i models.Internship) string { return strings.Join(i.Skills, " ") }},
	},
	Facets: []Field[models.Internship]{
		{"mode", func(i models.Internship) string { return i.Mode }},
		{"status", func(i models.Internship) string { return i.Status }},
	},
}

var Contributions = Schema[models.Contribution]{
	Search: []Field[models.Contribution]{
		{"title", func(c models.Contribution) string { return c.Title }},
		{"type", func(c models.Contribution) string { return c.Type }},
		{"event", func(c models.Contribution) string { return c.Event }},
		{"role", func(c models.Contribution) string { return c.Role }},
	},
	Facets: []Field[models.Contribution]{
		{"type", func(c models.Contribution) string { return c.Type }},
	},
}

var ContributionCerts = Schema[models.ContributionCert]{
	Search: []Field[models.ContributionCert]{
		{"name", func(c models.ContributionCert) string { return c.Name }},
		{"title", func(c models.ContributionCert) string { return c.Title }},
		{"event", func(c models.ContributionCert) string { return c.Event }},
		{"issuer", func(c models.ContributionCert) string { return c.Issuer }},
		{"role", func(c models.ContributionCert) string { return c.Role }},
		{"description", func(c models.ContributionCert) string { return c.Description }},
	},
	Facets: []Field[models.ContributionCert]{
		{"type", func(c models.ContributionCert) string { return c.Type }},
	},
}
