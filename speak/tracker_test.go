package speak

import (
	"testing"

	"github.com/dgnsrekt/bible-speak/verse"
)

func TestPausePositionWeighting(t *testing.T) {
	doc := kjv()
	p1, _ := doc.Position("Ps", 23, 1)
	p2, _ := doc.Position("Ps", 23, 2)

	// one long word against many short ones
	text := "Unquestionably " + "a b c d e f g h"
	chunk := SpeechChunk{
		Text:  text,
		Range: verse.Range{Start: p1, End: p2},
		Spans: []VerseSpan{
			{Position: p1, Offset: 0, Length: 14},
			{Position: p2, Offset: 15, Length: 15},
		},
	}

	tests := []struct {
		weighting PauseWeighting
		fraction  float64
		want      verse.Position
	}{
		// chars: 15 vs 15, midpoint falls in the second verse
		{WeightChars, 0.5, p2},
		{WeightChars, 0.4, p1},
		// words: 1 vs 8
		{WeightWords, 0.2, p2},
		{WeightWords, 0.1, p1},
		{WeightDuration, 0.05, p1},
		{WeightDuration, 0.95, p2},
	}

	for _, tt := range tests {
		t.Run(tt.weighting.String(), func(t *testing.T) {
			if got := pausePosition(chunk, tt.fraction, tt.weighting); got != tt.want {
				t.Errorf("pausePosition(%v, %v) = %s, want %s", tt.fraction, tt.weighting, got, tt.want)
			}
		})
	}
}

func TestChunkPieces(t *testing.T) {
	doc := kjv()
	p1, _ := doc.Position("Ps", 23, 1)
	p2, _ := doc.Position("Ps", 23, 2)

	c := SpeechChunk{
		Text: "Chapter 23. The LORD is my shepherd; He maketh me",
		Spans: []VerseSpan{
			{Position: p1, Offset: 12, Length: 24},
			{Position: p2, Offset: 37, Length: 13},
		},
	}

	got := c.pieces()
	want := []string{"Chapter 23. The LORD is my shepherd; ", "He maketh me"}
	if len(got) != len(want) {
		t.Fatalf("pieces() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pieces()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTrackerBatchStore(t *testing.T) {
	store := &batchStore{values: map[string]string{}}
	tr := NewTracker(store, quietLogger())

	doc := kjv()
	pos, _ := doc.Position("Ps", 14, 1)
	if err := tr.Reset(doc, pos); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if store.batches != 1 {
		t.Errorf("batches = %d, want 1", store.batches)
	}
	if store.values[KeyVerse] != "Ps.14.1" || store.values[KeyDocument] != "KJV" {
		t.Errorf("values = %v", store.values)
	}

	if err := tr.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if len(store.values) != 0 {
		t.Errorf("values after Clear = %v, want empty", store.values)
	}
}

type batchStore struct {
	values  map[string]string
	batches int
}

func (s *batchStore) Get(key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *batchStore) Set(key, value string) error {
	s.values[key] = value
	return nil
}

func (s *batchStore) SetAll(values map[string]string) error {
	s.batches++
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

func (s *batchStore) Delete(keys ...string) error {
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}
