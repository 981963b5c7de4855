package models

import "strings"

// Kind identifies an entity type. Its string value doubles as the dataType
// discriminator attached to items in the aggregated gallery.
type Kind string

const (
	KindCertificate      Kind = "certificate"
	KindBadge            Kind = "badge"
	KindInternship       Kind = "internship"
	KindContribution     Kind = "contribution"
	KindContributionCert Kind = "contributionCert"
)

// Kinds lists every entity type in display order.
var Kinds = []Kind{
	KindCertificate,
	KindBadge,
	KindInternship,
	KindContribution,
	KindContributionCert,
}

// Collection is the mongo collection backing the kind.
func (k Kind) Collection() string {
	switch k {
	case KindCertificate:
		return "certificates"
	case KindBadge:
		return "badges"
	case KindInternship:
		return "internships"
	case KindContribution:
		return "contributions"
	case KindContributionCert:
		return "contributioncerts"
	default:
		return ""
	}
}

// Path is the REST base path. contributionCert lives under /contributions/cert,
// next to the /contributions/:id routes of plain contributions.
func (k Kind) Path() string {
	switch k {
	case KindCertificate:
		return "/certificates"
	case KindBadge:
		return "/badges"
	case KindInternship:
		return "/internships"
	case KindContribution:
		return "/contributions"
	case KindContributionCert:
		return "/contributions/cert"
	default:
		return ""
	}
}

func (k Kind) Valid() bool { return k.Collection() != "" }

// Label is the human name used in messages.
func (k Kind) Label() string {
	switch k {
	case KindContributionCert:
		return "contribution certificate"
	default:
		return string(k)
	}
}

// ParseKind accepts the canonical value plus the plural and dashed spellings
// used on the command line ("certificates", "contribution-certs", ...).
func ParseKind(s string) (Kind, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer("-", "", "_", "").Replace(v)
	v = strings.TrimSuffix(v, "s")
	switch v {
	case "certificate", "cert":
		return KindCertificate, true
	case "badge":
		return KindBadge, true
	case "internship":
		return KindInternship, true
	case "contribution":
		return KindContribution, true
	case "contributioncert", "contributioncertificate":
		return KindContributionCert, true
	}
	return "", false
}
