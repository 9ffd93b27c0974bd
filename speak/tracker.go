package speak

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/bible-speak/speak/sentence"
	"github.com/dgnsrekt/bible-speak/verse"
)

// Tracker owns the session position, the lookahead of assembled but not yet
// emitted chunks, and writing the resumable position to the store.
type Tracker struct {
	store  PersistedStore
	logger *log.Logger

	doc       verse.Document
	frontier  verse.Position // first verse not yet emitted
	atEnd     bool           // nothing follows the frontier
	lookahead []SpeechChunk
	pending   Assembly // successor of the lookahead
	last      *SpeechChunk
	lastTitle *verse.Position // start of the last heading emitted since the last jump
	current   verse.Range
}

// NewTracker creates a tracker writing to store.
func NewTracker(store PersistedStore, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.Default()
	}
	return &Tracker{store: store, logger: logger}
}

// Reset discards all state and positions the tracker at pos.
func (t *Tracker) Reset(doc verse.Document, pos verse.Position) error {
	t.doc = doc
	t.last = nil
	return t.RecordJump(pos)
}

// Document returns the session document.
func (t *Tracker) Document() verse.Document {
	return t.doc
}

// Frontier returns the first verse not yet emitted and whether the end of
// the document has been reached.
func (t *Tracker) Frontier() (verse.Position, bool) {
	return t.frontier, t.atEnd
}

// Current returns the range being read: the last emitted chunk, or the
// single verse the session was positioned at.
func (t *Tracker) Current() verse.Range {
	return t.current
}

// LastTitle returns the verse of the most recent heading emitted since the
// session was last repositioned.
func (t *Tracker) LastTitle() (verse.Position, bool) {
	if t.lastTitle == nil {
		return verse.Position{}, false
	}
	return *t.lastTitle, true
}

// Buffer stores an assembly whose chunks have not been emitted yet.
func (t *Tracker) Buffer(a Assembly) {
	t.lookahead = append(t.lookahead[:0], a.Chunks...)
	t.pending = a
}

// Pop removes the next buffered chunk.
func (t *Tracker) Pop() (SpeechChunk, bool) {
	if len(t.lookahead) == 0 {
		return SpeechChunk{}, false
	}
	c := t.lookahead[0]
	t.lookahead = t.lookahead[1:]
	return c, true
}

// MarkEnd records that no further content exists.
func (t *Tracker) MarkEnd() {
	t.atEnd = true
	t.lookahead = nil
}

// RecordEmission advances the frontier past chunk and persists the verse
// the chunk begins at.
func (t *Tracker) RecordEmission(chunk SpeechChunk) error {
	switch {
	case len(t.lookahead) > 0:
		t.frontier = t.lookahead[0].Range.Start
	case t.pending.AtEnd:
		t.frontier = chunk.Range.End
		t.atEnd = true
	default:
		t.frontier = t.pending.Next
	}

	t.last = &chunk
	t.current = chunk.Range
	if chunk.IsTitle() {
		start := chunk.Range.Start
		t.lastTitle = &start
	}
	return t.persist(chunk.Range.Start)
}

// RecordPause maps the spoken fraction of the last chunk onto one of its
// verses, positions the session there and persists it.
func (t *Tracker) RecordPause(fraction float64, weighting PauseWeighting) (verse.Position, error) {
	t.lookahead = nil
	t.pending = Assembly{}

	if t.last == nil {
		t.current = verse.Single(t.frontier)
		return t.frontier, t.persist(t.frontier)
	}

	pos := pausePosition(*t.last, fraction, weighting)
	t.frontier = pos
	t.atEnd = false
	t.current = verse.Single(pos)
	t.last = nil
	return pos, t.persist(pos)
}

// RecordJump repositions the session. Buffered chunks are dropped since
// chunk boundaries depend on where reading starts.
func (t *Tracker) RecordJump(pos verse.Position) error {
	t.lookahead = nil
	t.pending = Assembly{}
	t.atEnd = false
	t.frontier = pos
	t.current = verse.Single(pos)
	t.last = nil
	t.lastTitle = nil
	return t.persist(pos)
}

// Origin is where relative navigation starts: the beginning of the chunk
// being spoken, or the frontier when nothing is.
func (t *Tracker) Origin() verse.Position {
	if t.last != nil {
		return t.last.Range.Start
	}
	return t.frontier
}

func (t *Tracker) persist(pos verse.Position) error {
	values := map[string]string{
		KeyDocument: t.doc.ID,
		KeyVerse:    pos.OSISRef(),
	}

	if b, ok := t.store.(BatchStore); ok {
		if err := b.SetAll(values); err != nil {
			return fmt.Errorf("persist %s: %w", pos, err)
		}
	} else {
		for _, key := range []string{KeyDocument, KeyVerse} {
			if err := t.store.Set(key, values[key]); err != nil {
				return fmt.Errorf("persist %s: %w", pos, err)
			}
		}
	}

	t.logger.Debug("Persisted position", "document", t.doc.ID, "verse", pos)
	return nil
}

// Clear removes the persisted position.
func (t *Tracker) Clear() error {
	if d, ok := t.store.(Deleter); ok {
		return d.Delete(KeyDocument, KeyVerse)
	}
	for _, key := range []string{KeyDocument, KeyVerse} {
		if err := t.store.Set(key, ""); err != nil {
			return err
		}
	}
	return nil
}

// pausePosition picks the verse whose weighted share of the chunk contains
// the spoken fraction.
func pausePosition(chunk SpeechChunk, fraction float64, weighting PauseWeighting) verse.Position {
	if len(chunk.Spans) == 0 {
		return chunk.Range.Start
	}
	if math.IsNaN(fraction) || fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	pieces := chunk.pieces()
	weights := make([]float64, len(pieces))
	total := 0.0
	for i, p := range pieces {
		weights[i] = weigh(p, weighting)
		total += weights[i]
	}
	if total == 0 {
		return chunk.Spans[0].Position
	}

	target := fraction * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return chunk.Spans[i].Position
		}
	}
	return chunk.Spans[len(chunk.Spans)-1].Position
}

func weigh(text string, weighting PauseWeighting) float64 {
	switch weighting {
	case WeightWords:
		return float64(sentence.WordCount(text))
	case WeightDuration:
		return sentence.EstimateDuration(text).Seconds()
	default:
		return float64(len([]rune(text)))
	}
}
