package speak

import (
	"fmt"
	"strings"
)

// RewindAmount is how far Rewind and Forward move.
type RewindAmount int

const (
	// RewindDefault uses the amount from the session settings.
	RewindDefault RewindAmount = iota
	// RewindNone disables rewind and forward.
	RewindNone
	// RewindOneVerse moves a single verse.
	RewindOneVerse
	// RewindTenVerses moves ten verses.
	RewindTenVerses
	// RewindFullChapter moves to the start of the adjacent chapter.
	RewindFullChapter
)

var rewindNames = map[RewindAmount]string{
	RewindDefault:     "default",
	RewindNone:        "none",
	RewindOneVerse:    "one_verse",
	RewindTenVerses:   "ten_verses",
	RewindFullChapter: "full_chapter",
}

func (a RewindAmount) String() string {
	if s, ok := rewindNames[a]; ok {
		return s
	}
	return "unknown"
}

// ParseRewindAmount parses names like "one_verse" or "full-chapter".
func ParseRewindAmount(s string) (RewindAmount, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for a, name := range rewindNames {
		if name == key {
			return a, nil
		}
	}
	return RewindDefault, fmt.Errorf("%w: unknown rewind amount %q", ErrInvalidConfig, s)
}

// PauseWeighting selects how a pause fraction is mapped onto the verses of a
// multi-verse chunk.
type PauseWeighting int

const (
	// WeightChars weights each verse by its character count.
	WeightChars PauseWeighting = iota
	// WeightWords weights each verse by its word count.
	WeightWords
	// WeightDuration weights each verse by its estimated speaking time.
	WeightDuration
)

var weightingNames = map[PauseWeighting]string{
	WeightChars:    "chars",
	WeightWords:    "words",
	WeightDuration: "duration",
}

func (w PauseWeighting) String() string {
	if s, ok := weightingNames[w]; ok {
		return s
	}
	return "unknown"
}

// ParsePauseWeighting parses "chars", "words" or "duration".
func ParsePauseWeighting(s string) (PauseWeighting, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for w, name := range weightingNames {
		if name == key {
			return w, nil
		}
	}
	return WeightChars, fmt.Errorf("%w: unknown pause weighting %q", ErrInvalidConfig, s)
}

// Settings control how a reading session chunks and navigates. They are
// frozen for the lifetime of a session.
type Settings struct {
	ContinueSentences   bool
	SpeakChapterChanges bool
	SpeakBookChanges    bool
	SpeakTitles         bool
	RewindAmount        RewindAmount

	PauseWeighting PauseWeighting
	MaxChunkVerses int    // 0 means unlimited
	TerminalMarks  string // empty selects sentence.DefaultTerminals
}

// DefaultSettings returns the settings used when none are configured.
func DefaultSettings() Settings {
	return Settings{
		ContinueSentences:   true,
		SpeakChapterChanges: true,
		SpeakBookChanges:    true,
		SpeakTitles:         false,
		RewindAmount:        RewindOneVerse,
		PauseWeighting:      WeightChars,
		MaxChunkVerses:      25,
	}
}

// Validate checks the settings for invalid values.
func (s Settings) Validate() error {
	if s.RewindAmount == RewindDefault {
		return fmt.Errorf("%w: settings need a concrete rewind amount", ErrInvalidConfig)
	}
	if _, ok := rewindNames[s.RewindAmount]; !ok {
		return fmt.Errorf("%w: rewind amount %d", ErrInvalidConfig, s.RewindAmount)
	}
	if _, ok := weightingNames[s.PauseWeighting]; !ok {
		return fmt.Errorf("%w: pause weighting %d", ErrInvalidConfig, s.PauseWeighting)
	}
	if s.MaxChunkVerses < 0 {
		return fmt.Errorf("%w: max chunk verses must not be negative, got %d", ErrInvalidConfig, s.MaxChunkVerses)
	}
	return nil
}

// Action is a user-facing control a host may offer.
type Action uint8

const (
	ActionSpeak Action = 1 << iota
	ActionPause
	ActionRewind
	ActionForward
	ActionRestore
)

var actionNames = []struct {
	a    Action
	name string
}{
	{ActionSpeak, "speak"},
	{ActionPause, "pause"},
	{ActionRewind, "rewind"},
	{ActionForward, "forward"},
	{ActionRestore, "restore"},
}

// Actions is a set of enabled controls.
type Actions uint8

// Has reports whether a is in the set.
func (s Actions) Has(a Action) bool {
	return s&Actions(a) != 0
}

// With returns the set with a added.
func (s Actions) With(a Action) Actions {
	return s | Actions(a)
}

// Without returns the set with a removed.
func (s Actions) Without(a Action) Actions {
	return s &^ Actions(a)
}

func (s Actions) String() string {
	var names []string
	for _, an := range actionNames {
		if s.Has(an.a) {
			names = append(names, an.name)
		}
	}
	return strings.Join(names, ",")
}
