package models

import (
	"encoding/json"
	"strings"
)

// Form is the flat set of text fields submitted with a create or update,
// the multipart counterpart of a record.
type Form map[string]string

func (f Form) set(key string, dst *string) {
	if v, ok := f[key]; ok {
		*dst = strings.TrimSpace(v)
	}
}

// ParseSkills decodes the serialized skills list. A JSON array is expected;
// anything else is read as a comma separated list.
func ParseSkills(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	var parts []string
	if err := json.Unmarshal([]byte(raw), &parts); err != nil {
		parts = strings.Split(raw, ",")
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FormatSkills serializes skills the way ParseSkills expects them.
func FormatSkills(skills []string) string {
	if skills == nil {
		skills = []string{}
	}
	b, _ := json.Marshal(skills)
	return string(b)
}
