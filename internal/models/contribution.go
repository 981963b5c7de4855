package models

// Contribution is an open-source, hackathon or community contribution.
// ReferenceID may point at another record; nothing enforces it.
type Contribution struct {
	Meta `bson:",inline"`

	Title       string `bson:"title" json:"title"`
	Type        string `bson:"type" json:"type"`
	Event       string `bson:"event,omitempty" json:"event,omitempty"`
	Role        string `bson:"role,omitempty" json:"role,omitempty"`
	ReferenceID string `bson:"referenceId,omitempty" json:"referenceId,omitempty"`
	Image       string `bson:"image,omitempty" json:"image,omitempty"`
}

func (c *Contribution) Kind() Kind        { return KindContribution }
func (c *Contribution) ImagePath() string { return c.Image }
func (c *Contribution) SetImage(p string) { c.Image = p }

func (c *Contribution) MissingFields() []string {
	return missing("title", c.Title, "type", c.Type, "image", c.Image)
}

func (c *Contribution) ApplyForm(f Form) {
	f.set("title", &c.Title)
	f.set("type", &c.Type)
	f.set("event", &c.Event)
	f.set("role", &c.Role)
	f.set("referenceId", &c.ReferenceID)
}

func (c *Contribution) Form() Form {
	return Form{
		"title":       c.Title,
		"type":        c.Type,
		"event":       c.Event,
		"role":        c.Role,
		"referenceId": c.ReferenceID,
	}
}

// ContributionCert is the certificate image attached to a contribution.
// Older documents carry "title", newer ones "name"; both are kept and
// DisplayName decides what to show.
type ContributionCert struct {
	Meta `bson:",inline"`

	Name        string `bson:"name,omitempty" json:"name,omitempty"`
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Type        string `bson:"type,omitempty" json:"type,omitempty"`
	Event       string `bson:"event,omitempty" json:"event,omitempty"`
	Role        string `bson:"role,omitempty" json:"role,omitempty"`
	Issuer      string `bson:"issuer,omitempty" json:"issuer,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Image       string `bson:"image" json:"image"`
}

func (c *ContributionCert) Kind() Kind              { return KindContributionCert }
func (c *ContributionCert) ImagePath() string       { return c.Image }
func (c *ContributionCert) SetImage(p string)       { c.Image = p }
func (c *ContributionCert) MissingFields() []string { return missing("image", c.Image) }

// DisplayName falls back name -> title -> "Untitled".
func (c *ContributionCert) DisplayName() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.Title != "":
		return c.Title
	default:
		return "Untitled"
	}
}

func (c *ContributionCert) ApplyForm(f Form) {
	f.set("name", &c.Name)
	f.set("title", &c.Title)
	f.set("type", &c.Type)
	f.set("event", &c.Event)
	f.set("role", &c.Role)
	f.set("issuer", &c.Issuer)
	f.set("description", &c.Description)
}

func (c *ContributionCert) Form() Form {
	return Form{
		"name":        c.Name,
		"title":       c.Title,
		"type":        c.Type,
		"event":       c.Event,
		"role":        c.Role,
		"issuer":      c.Issuer,
		"description": c.Description,
	}
}
