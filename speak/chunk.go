package speak

import "github.com/dgnsrekt/bible-speak/verse"

// ChunkKind distinguishes verse text from heading pseudo-chunks.
type ChunkKind int

const (
	// ChunkVerses carries the text of one or more verses.
	ChunkVerses ChunkKind = iota
	// ChunkTitle carries a heading spoken ahead of its verse.
	ChunkTitle
)

func (k ChunkKind) String() string {
	switch k {
	case ChunkVerses:
		return "verses"
	case ChunkTitle:
		return "title"
	default:
		return "unknown"
	}
}

// VerseSpan locates one verse's text inside a chunk.
type VerseSpan struct {
	Position verse.Position
	Offset   int // byte offset into SpeechChunk.Text
	Length   int // byte length, including a chapter announcement

	// EntersNewChapter is set on the first verse of a chapter that the
	// chunk reaches after its start.
	EntersNewChapter bool
}

// SpeechChunk is one unit of speakable text. It is never modified after
// being emitted.
type SpeechChunk struct {
	Text             string
	Range            verse.Range
	EntersNewChapter bool
	EntersNewBook    bool
	ChapterNumber    int
	BookName         string
	Kind             ChunkKind
	Spans            []VerseSpan
}

// IsTitle reports whether the chunk is a heading pseudo-chunk.
func (c SpeechChunk) IsTitle() bool {
	return c.Kind == ChunkTitle
}

// pieces returns each verse's share of the text, with any announcement
// prefix counted toward the first verse.
func (c SpeechChunk) pieces() []string {
	if len(c.Spans) == 0 {
		return []string{c.Text}
	}

	out := make([]string, len(c.Spans))
	for i, s := range c.Spans {
		from := s.Offset
		if i == 0 {
			from = 0
		}
		to := len(c.Text)
		if i+1 < len(c.Spans) {
			to = c.Spans[i+1].Offset
		}
		out[i] = c.Text[from:to]
	}
	return out
}
