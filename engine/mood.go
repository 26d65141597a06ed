package engine

import "strings"

// Mood names the narrative intensity of the page section being read
type Mood string

const (
	MoodHome    Mood = "home"    // calm
	MoodWork    Mood = "work"    // intense
	MoodContact Mood = "contact" // frozen
)

// moodValues maps a named mood onto the mood axis
var moodValues = map[Mood]float64{
	MoodHome:    0.0,
	MoodWork:    1.0,
	MoodContact: -0.5,
}

// Value returns the mood axis value for a named mood
func (m Mood) Value() (float64, bool) {
	v, ok := moodValues[m]
	return v, ok
}

// ParseMood resolves a mood name, case-insensitively
func ParseMood(s string) (Mood, bool) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	_, ok := moodValues[m]
	return m, ok
}

func clampMood(v float64) float64 {
	return clamp(v, moodMin, moodMax)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
