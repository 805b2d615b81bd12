package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports per-field problems found before a record is
// created or replaced. It never mutates state.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidatePersonalInfo checks creation-time requirements: name and
// profession must be non-empty, skills must be unique (case-sensitive),
// and project ids must be unique within the record.
func ValidatePersonalInfo(info PersonalInfo) error {
	fields := map[string]string{}
	if strings.TrimSpace(info.Name) == "" {
		fields["name"] = "required"
	}
	if strings.TrimSpace(info.Profession) == "" {
		fields["profession"] = "required"
	}
	seenSkills := make(map[string]struct{}, len(info.Skills))
	for _, skill := range info.Skills {
		if _, dup := seenSkills[skill]; dup {
			fields["skills"] = fmt.Sprintf("duplicate entry %q", skill)
			break
		}
		seenSkills[skill] = struct{}{}
	}
	seenProjects := make(map[string]struct{}, len(info.Projects))
	for _, proj := range info.Projects {
		if proj.ID == "" {
			fields["projects"] = "project id required"
			break
		}
		if _, dup := seenProjects[proj.ID]; dup {
			fields["projects"] = fmt.Sprintf("duplicate project id %q", proj.ID)
			break
		}
		seenProjects[proj.ID] = struct{}{}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
