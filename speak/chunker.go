package speak

import (
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/bible-speak/speak/sentence"
	"github.com/dgnsrekt/bible-speak/verse"
)

// Assembly is the result of one chunking step: the chunks to emit in order
// and the first verse after them.
type Assembly struct {
	Chunks []SpeechChunk
	Next   verse.Position
	AtEnd  bool // no verse follows the last chunk
}

// Chunker turns verse text into speakable chunks.
type Chunker struct {
	content   ContentSource
	traverser Traverser
	announcer *Announcer
	detector  *sentence.Detector
	logger    *log.Logger
}

// NewChunker creates a chunker. A nil logger uses the default logger.
func NewChunker(content ContentSource, traverser Traverser, announcer *Announcer, logger *log.Logger) *Chunker {
	if announcer == nil {
		announcer = NewAnnouncer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Chunker{
		content:   content,
		traverser: traverser,
		announcer: announcer,
		detector:  sentence.NewDetector(""),
		logger:    logger,
	}
}

// SetTerminals replaces the sentence-terminal marks.
func (c *Chunker) SetTerminals(marks string) {
	c.detector = sentence.NewDetector(marks)
}

// text fetches a verse, treating errors and blank text as missing.
func (c *Chunker) text(doc verse.Document, pos verse.Position) (string, bool) {
	t, err := c.content.VerseText(doc, pos)
	if err != nil {
		if !errors.Is(err, ErrContentUnavailable) {
			c.logger.Warn("Could not read verse", "verse", pos, "err", err)
		}
		return "", false
	}
	t = strings.TrimSpace(t)
	return t, t != ""
}

func (c *Chunker) next(doc verse.Document, pos verse.Position) (verse.Position, bool) {
	r, ok := c.traverser.Next(doc, verse.Single(pos))
	if !ok {
		return verse.Position{}, false
	}
	return r.Start, true
}

// Assemble builds the next chunks starting at from. ok is false when no
// verse with text remains before the end of the document.
func (c *Chunker) Assemble(doc verse.Document, from verse.Position, settings Settings) (Assembly, bool) {
	// Skip leading verses without text, remembering whether a chapter or
	// book start was passed over
	var (
		pos            = from
		text           string
		skippedChapter bool
		skippedBook    bool
	)
	for {
		t, ok := c.text(doc, pos)
		if ok {
			text = t
			break
		}

		c.logger.Debug("Skipping verse without text", "verse", pos)
		if c.content.IsFirstVerseOfChapter(doc, pos) {
			skippedChapter = true
		}
		if c.content.IsFirstVerseOfBook(doc, pos) {
			skippedBook = true
		}

		next, more := c.next(doc, pos)
		if !more {
			return Assembly{}, false
		}
		if next.Book != pos.Book {
			// a skipped chapter start of the previous book no longer applies
			skippedChapter, skippedBook = false, false
		}
		pos = next
	}

	start := pos
	entersBook := c.content.IsFirstVerseOfBook(doc, start) || skippedBook
	entersChapter := c.content.IsFirstVerseOfChapter(doc, start) || skippedChapter || entersBook

	chapter := c.content.ChapterNumber(doc, start)
	bookName := c.content.BookName(doc, start)

	var prefix string
	switch {
	case entersBook && settings.SpeakBookChanges:
		prefix = c.announcer.BookChange(doc.Language, bookName, chapter)
	case entersChapter && settings.SpeakChapterChanges:
		prefix = c.announcer.ChapterChange(doc.Language, chapter)
	}

	var chunks []SpeechChunk

	if settings.SpeakTitles {
		if title := strings.TrimSpace(c.content.Title(doc, start)); title != "" {
			titleText := prefix + title
			chunks = append(chunks, SpeechChunk{
				Text:             titleText,
				Range:            verse.Single(start),
				EntersNewChapter: entersChapter,
				EntersNewBook:    entersBook,
				ChapterNumber:    chapter,
				BookName:         bookName,
				Kind:             ChunkTitle,
				Spans:            []VerseSpan{{Position: start, Offset: 0, Length: len(titleText)}},
			})
			// the title carries the announcement and the entry flags
			prefix = ""
			entersChapter, entersBook = false, false
		}
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	spans := []VerseSpan{{Position: start, Offset: sb.Len(), Length: len(text)}}
	sb.WriteString(text)

	end := start
	probe := start
	atEnd := false

	if settings.ContinueSentences {
		for !c.detector.EndsSentence(text) {
			if settings.MaxChunkVerses > 0 && len(spans) >= settings.MaxChunkVerses {
				break
			}

			next, more := c.next(doc, probe)
			if !more {
				atEnd = true
				break
			}
			// A chunk never crosses a book boundary
			if next.Book != start.Book {
				break
			}
			// Headings always start a chunk of their own
			if settings.SpeakTitles && strings.TrimSpace(c.content.Title(doc, next)) != "" {
				break
			}

			probe = next
			t, ok := c.text(doc, next)
			if !ok {
				c.logger.Debug("Skipping verse without text", "verse", next)
				continue
			}

			sb.WriteString(" ")
			span := VerseSpan{Position: next, Offset: sb.Len()}
			// a chapter entered mid-chunk is announced before its first verse
			if next.Chapter != end.Chapter {
				span.EntersNewChapter = true
				if settings.SpeakChapterChanges {
					sb.WriteString(c.announcer.ChapterChange(doc.Language, c.content.ChapterNumber(doc, next)))
				}
			}
			sb.WriteString(t)
			span.Length = sb.Len() - span.Offset
			spans = append(spans, span)
			text = t
			end = next
		}
	}

	chunks = append(chunks, SpeechChunk{
		Text:             sb.String(),
		Range:            verse.Range{Start: start, End: end},
		EntersNewChapter: entersChapter,
		EntersNewBook:    entersBook,
		ChapterNumber:    chapter,
		BookName:         bookName,
		Kind:             ChunkVerses,
		Spans:            spans,
	})

	a := Assembly{Chunks: chunks}
	if atEnd {
		a.AtEnd = true
		return a, true
	}
	next, more := c.next(doc, end)
	if !more {
		a.AtEnd = true
		return a, true
	}
	a.Next = next
	return a, true
}
