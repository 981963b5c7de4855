package models

// Suggested values shown by forms. Stored facets are free strings and may
// hold values missing from these lists.
var (
	CategoryOptions         = []string{"frontend", "backend", "cloud", "database", "devops", "other"}
	InternshipModeOptions   = []string{"remote", "onsite", "hybrid"}
	InternshipStatusOptions = []string{"completed", "ongoing"}
	ContributionTypeOptions = []string{"open-source", "hackathon", "community", "talk", "other"}
)
