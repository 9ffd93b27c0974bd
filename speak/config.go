package speak

import (
	"fmt"
)

// Config holds the navigator options as read from the config file. Set
// environment variables override the file; unset ones leave it alone.
type Config struct {
	ContinueSentences   bool   `yaml:"continue_sentences" env:"BIBLESPEAK_CONTINUE_SENTENCES"`
	SpeakChapterChanges bool   `yaml:"speak_chapter_changes" env:"BIBLESPEAK_SPEAK_CHAPTER_CHANGES"`
	SpeakBookChanges    bool   `yaml:"speak_book_changes" env:"BIBLESPEAK_SPEAK_BOOK_CHANGES"`
	SpeakTitles         bool   `yaml:"speak_titles" env:"BIBLESPEAK_SPEAK_TITLES"`
	RewindAmount        string `yaml:"rewind_amount" env:"BIBLESPEAK_REWIND_AMOUNT"`
	PauseWeighting      string `yaml:"pause_weighting" env:"BIBLESPEAK_PAUSE_WEIGHTING"`
	MaxChunkVerses      int    `yaml:"max_chunk_verses" env:"BIBLESPEAK_MAX_CHUNK_VERSES"`
	TerminalMarks       string `yaml:"terminal_marks" env:"BIBLESPEAK_TERMINAL_MARKS"`
}

// DefaultConfig returns the default navigator configuration.
func DefaultConfig() Config {
	d := DefaultSettings()
	return Config{
		ContinueSentences:   d.ContinueSentences,
		SpeakChapterChanges: d.SpeakChapterChanges,
		SpeakBookChanges:    d.SpeakBookChanges,
		SpeakTitles:         d.SpeakTitles,
		RewindAmount:        d.RewindAmount.String(),
		PauseWeighting:      d.PauseWeighting.String(),
		MaxChunkVerses:      d.MaxChunkVerses,
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	_, err := c.ToSettings()
	return err
}

// ToSettings converts the configuration to navigator settings.
func (c Config) ToSettings() (Settings, error) {
	rewind, err := ParseRewindAmount(c.RewindAmount)
	if err != nil {
		return Settings{}, err
	}
	if rewind == RewindDefault {
		return Settings{}, fmt.Errorf("%w: rewind_amount must name an amount", ErrInvalidConfig)
	}
	weighting, err := ParsePauseWeighting(c.PauseWeighting)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		ContinueSentences:   c.ContinueSentences,
		SpeakChapterChanges: c.SpeakChapterChanges,
		SpeakBookChanges:    c.SpeakBookChanges,
		SpeakTitles:         c.SpeakTitles,
		RewindAmount:        rewind,
		PauseWeighting:      weighting,
		MaxChunkVerses:      c.MaxChunkVerses,
		TerminalMarks:       c.TerminalMarks,
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
