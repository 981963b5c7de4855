package models

type Internship struct {
	Meta `bson:",inline"`

	Company  string   `bson:"company" json:"company"`
	Role     string   `bson:"role,omitempty" json:"role,omitempty"`
	Duration string   `bson:"duration,omitempty" json:"duration,omitempty"`
	Mode     string   `bson:"mode,omitempty" json:"mode,omitempty"`     // remote|onsite|hybrid, not enforced
	Status   string   `bson:"status,omitempty" json:"status,omitempty"` // completed|ongoing, not enforced
	Image    string   `bson:"image,omitempty" json:"image,omitempty"`
	Skills   []string `bson:"skills" json:"skills"`
}

func (i *Internship) Kind() Kind              { return KindInternship }
func (i *Internship) ImagePath() string       { return i.Image }
func (i *Internship) SetImage(p string)       { i.Image = p }
func (i *Internship) MissingFields() []string { return missing("company", i.Company) }

func (i *Internship) ApplyForm(f Form) {
	f.set("company", &i.Company)
	f.set("role", &i.Role)
	f.set("duration", &i.Duration)
	f.set("mode", &i.Mode)
	f.set("status", &i.Status)
	if raw, ok := f["skills"]; ok {
		i.Skills = ParseSkills(raw)
	}
	if i.Skills == nil {
		i.Skills = []string{}
	}
}

func (i *Internship) Form() Form {
	return Form{
		"company":  i.Company,
		"role":     i.Role,
		"duration": i.Duration,
		"mode":     i.Mode,
		"status":   i.Status,
		"skills":   FormatSkills(i.Skills),
	}
}
