package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/showcase/internal/catalog"
	"github.com/yoockh/showcase/internal/client"
	"github.com/yoockh/showcase/internal/dashboard"
	"github.com/yoockh/showcase/internal/gallery"
	"github.com/yoockh/showcase/internal/models"
)

// view is the kind-independent face of a dashboard.Collection.
type view interface {
	Kind() models.Kind
	Load(ctx context.Context) error
	Create(ctx context.Context, form models.Form, img *client.Image) error
	Update(ctx context.Context, id string, form models.Form, img *client.Image) error
	Delete(ctx context.Context, id string) error
	SetSearch(text string)
	SetFacet(facet, value string)
	Notice() *dashboard.Notice
	Stats() catalog.Summary
	FacetOptions() map[string][]string

	items() []gallery.Item
	statsFacet() string
}

type typedView[T any, PT client.Record[T]] struct {
	*dashboard.Collection[T, PT]
	facet string
}

func (v typedView[T, PT]) items() []gallery.Item {
	rows := v.Visible()
	out := make([]gallery.Item, len(rows))
	for i := range rows {
		out[i] = gallery.Describe(PT(&rows[i]))
	}
	return out
}

func (v typedView[T, PT]) statsFacet() string { return v.facet }

func newView(kind models.Kind, api *client.Client, log *logrus.Logger) (view, error) {
	switch kind {
	case models.KindCertificate:
		return typedView[models.Certificate, *models.Certificate]{dashboard.New[models.Certificate](api, catalog.Certificates, log), "category"}, nil
	case models.KindBadge:
		return typedView[models.Badge, *models.Badge]{dashboard.New[models.Badge](api, catalog.Badges, log), "category"}, nil
	case models.KindInternship:
		return typedView[models.Internship, *models.Internship]{dashboard.New[models.Internship](api, catalog.Internships, log), "status"}, nil
	case models.KindContribution:
		return typedView[models.Contribution, *models.Contribution]{dashboard.New[models.Contribution](api, catalog.Contributions, log), "type"}, nil
	case models.KindContributionCert:
		return typedView[models.ContributionCert, *models.ContributionCert]{dashboard.New[models.ContributionCert](api, catalog.ContributionCerts, log), "type"}, nil
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}

func parseKind(s string) (models.Kind, error) {
	k, ok := models.ParseKind(s)
	if !ok {
		names := make([]string, len(models.Kinds))
		for i, k := range models.Kinds {
			names[i] = string(k)
		}
		return "", fmt.Errorf("unknown kind %q (want one of %s)", s, strings.Join(names, ", "))
	}
	return k, nil
}

// parsePairs turns repeated key=value flags into a map.
func parsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", p)
		}
		out[k] = v
	}
	return out, nil
}
