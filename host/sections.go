package host

import (
	"errors"
	"fmt"

	"voidgeometry/engine"
)

// Section is one scene of the page. Sections are stacked top to bottom in
// table order, each Config.SectionHeight viewports tall.
type Section struct {
	ID   string      `yaml:"id"`
	Mood engine.Mood `yaml:"mood"`
}

// DefaultSections is the scene table of the page
func DefaultSections() []Section {
	return []Section{
		{ID: "01", Mood: engine.MoodHome},
		{ID: "02", Mood: engine.MoodHome},
		{ID: "03", Mood: engine.MoodWork},
		{ID: "04", Mood: engine.MoodWork},
		{ID: "05", Mood: engine.MoodWork},
		{ID: "06", Mood: engine.MoodContact},
		{ID: "07", Mood: engine.MoodContact},
	}
}

// ParseSections checks a section table read from settings and returns it
// with mood names in canonical form. Ids must be present and unique.
func ParseSections(in []Section) ([]Section, error) {
	if len(in) == 0 {
		return nil, errors.New("at least one section is required")
	}
	out := make([]Section, len(in))
	seen := make(map[string]bool, len(in))
	var errs []error
	for i, s := range in {
		switch {
		case s.ID == "":
			errs = append(errs, fmt.Errorf("section %d has no id", i+1))
		case seen[s.ID]:
			errs = append(errs, fmt.Errorf("section %q is listed twice", s.ID))
		}
		seen[s.ID] = true

		m, ok := engine.ParseMood(string(s.Mood))
		if !ok {
			errs = append(errs, fmt.Errorf("section %q has unknown mood %q", s.ID, s.Mood))
		}
		out[i] = Section{ID: s.ID, Mood: m}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

// indexOf returns the table position of id, or -1
func indexOf(sections []Section, id string) int {
	for i, s := range sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}
