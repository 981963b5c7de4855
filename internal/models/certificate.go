package models

// Certificate is a course or vendor certificate.
type Certificate struct {
	Meta `bson:",inline"`

	Title    string `bson:"title" json:"title"`
	Issuer   string `bson:"issuer,omitempty" json:"issuer,omitempty"`
	Image    string `bson:"image,omitempty" json:"image,omitempty"`
	Category string `bson:"category,omitempty" json:"category,omitempty"`
}

func (c *Certificate) Kind() Kind              { return KindCertificate }
func (c *Certificate) ImagePath() string       { return c.Image }
func (c *Certificate) SetImage(p string)       { c.Image = p }
func (c *Certificate) MissingFields() []string { return missing("title", c.Title) }

func (c *Certificate) ApplyForm(f Form) {
	f.set("title", &c.Title)
	f.set("issuer", &c.Issuer)
	f.set("category", &c.Category)
}

func (c *Certificate) Form() Form {
	return Form{"title": c.Title, "issuer": c.Issuer, "category": c.Category}
}

// Badge has the same shape as Certificate but lives in its own collection.
type Badge struct {
	Meta `bson:",inline"`

	Title    string `bson:"title" json:"title"`
	Issuer   string `bson:"issuer,omitempty" json:"issuer,omitempty"`
	Image    string `bson:"image,omitempty" json:"image,omitempty"`
	Category string `bson:"category,omitempty" json:"category,omitempty"`
}

func (b *Badge) Kind() Kind              { return KindBadge }
func (b *Badge) ImagePath() string       { return b.Image }
func (b *Badge) SetImage(p string)       { b.Image = p }
func (b *Badge) MissingFields() []string { return missing("title", b.Title) }

func (b *Badge) ApplyForm(f Form) {
	f.set("title", &b.Title)
	f.set("issuer", &b.Issuer)
	f.set("category", &b.Category)
}

func (b *Badge) Form() Form {
	return Form{"title": b.Title, "issuer": b.Issuer, "category": b.Category}
}
