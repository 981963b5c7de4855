package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "React"}, ParseSkills(`["Go"," React ",""]`))
	assert.Equal(t, []string{"Go", "Docker"}, ParseSkills("Go, Docker,"))
	assert.Equal(t, []string{}, ParseSkills("  "))
	assert.Equal(t, []string{"a", "b"}, ParseSkills(FormatSkills([]string{"a", "b"})))
	assert.Equal(t, "[]", FormatSkills(nil))
}

func TestContributionCertDisplayName(t *testing.T) {
	assert.Equal(t, "Named", (&ContributionCert{Name: "Named", Title: "Titled"}).DisplayName())
	assert.Equal(t, "Titled", (&ContributionCert{Title: "Titled"}).DisplayName())
	assert.Equal(t, "Untitled", (&ContributionCert{}).DisplayName())
}

func TestApplyFormOnlyTouchesPresentKeys(t *testing.T) {
	c := &Certificate{Title: "AWS Dev", Issuer: "Amazon", Category: "cloud", Image: "/uploads/a.png"}
	c.ApplyForm(Form{"title": "  AWS Developer "})

	assert.Equal(t, "AWS Developer", c.Title)
	assert.Equal(t, "Amazon", c.Issuer)
	assert.Equal(t, "cloud", c.Category)
	assert.Equal(t, "/uploads/a.png", c.Image)
}

func TestFormRoundTripKeepsRecord(t *testing.T) {
	in := &Internship{Company: "Acme", Role: "Intern", Mode: "remote", Skills: []string{"Go"}}
	out := &Internship{}
	out.ApplyForm(in.Form())
	assert.Equal(t, in, out)
}

func TestMissingFields(t *testing.T) {
	assert.Equal(t, []string{"title"}, (&Certificate{}).MissingFields())
	assert.Empty(t, (&Badge{Title: "x"}).MissingFields())
	assert.Equal(t, []string{"company"}, (&Internship{}).MissingFields())
	assert.Equal(t, []string{"title", "type", "image"}, (&Contribution{}).MissingFields())
	assert.Equal(t, []string{"image"}, (&Contribution{Title: "t", Type: "talk"}).MissingFields())
	assert.Equal(t, []string{"image"}, (&ContributionCert{Name: "n"}).MissingFields())
}

func TestMetaTouch(t *testing.T) {
	var m Meta
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.Touch(first)
	m.Touch(first.Add(time.Hour))

	assert.Equal(t, first, m.CreatedAt)
	assert.Equal(t, first.Add(time.Hour), m.UpdatedAt)
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"certificates":       KindCertificate,
		"Badge":              KindBadge,
		"internships":        KindInternship,
		"contribution":       KindContribution,
		"contribution-certs": KindContributionCert,
		"contributionCert":   KindContributionCert,
	}
	for in, want := range cases {
		got, ok := ParseKind(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseKind("projects")
	assert.False(t, ok)
}

func TestKindPaths(t *testing.T) {
	for _, k := range Kinds {
		assert.True(t, k.Valid())
		assert.NotEmpty(t, k.Path())
	}
	assert.Equal(t, "/contributions/cert", KindContributionCert.Path())
}
