package verse

import (
	"golang.org/x/text/language"
)

// Document is a scripture text (a Bible translation) together with its
// versification.
type Document struct {
	ID            string       // short initials, e.g. "KJV" or "FinRK"
	Name          string       // descriptive name
	Language      language.Tag // language of the text, drives announcements
	Versification *System
}

// IsZero reports whether d is the zero Document.
func (d Document) IsZero() bool {
	return d.ID == "" && d.Versification == nil
}

// Position resolves book/chapter/verse coordinates inside d.
func (d Document) Position(book string, chapter, verse int) (Position, error) {
	ord, err := d.Versification.Ordinal(book, chapter, verse)
	if err != nil {
		return Position{}, err
	}
	p, _ := d.At(ord)
	return p, nil
}

// At returns the position with the given ordinal.
func (d Document) At(ordinal int) (Position, bool) {
	b, c, v, ok := d.Versification.Locate(ordinal)
	if !ok {
		return Position{}, false
	}
	return Position{
		DocumentID: d.ID,
		Book:       d.Versification.books[b].OSIS,
		Chapter:    c,
		Verse:      v,
		Ordinal:    ordinal,
	}, true
}

// First returns the first verse of the document.
func (d Document) First() Position {
	p, _ := d.At(1)
	return p
}

// Last returns the last verse of the document.
func (d Document) Last() Position {
	p, _ := d.At(d.Versification.Total())
	return p
}

// Contains reports whether p is a valid position of d.
func (d Document) Contains(p Position) bool {
	if p.DocumentID != d.ID || d.Versification == nil {
		return false
	}
	ord, err := d.Versification.Ordinal(p.Book, p.Chapter, p.Verse)
	return err == nil && ord == p.Ordinal
}

// Offset moves p by delta verses. The result is clamped to the document
// edges; clamped reports whether clamping happened.
func (d Document) Offset(p Position, delta int) (out Position, clamped bool) {
	ord := p.Ordinal + delta
	switch {
	case ord < 1:
		return d.First(), true
	case ord > d.Versification.Total():
		return d.Last(), true
	}
	out, _ = d.At(ord)
	return out, false
}

// ChapterStart returns verse 1 of the chapter containing p.
func (d Document) ChapterStart(p Position) Position {
	out, _ := d.At(p.Ordinal - p.Verse + 1)
	return out
}

// BookStart returns 1.1 of the book containing p.
func (d Document) BookStart(p Position) Position {
	out, err := d.Position(p.Book, 1, 1)
	if err != nil {
		return p
	}
	return out
}

// NextChapter returns verse 1 of the chapter following p's chapter.
func (d Document) NextChapter(p Position) (Position, bool) {
	count := d.Versification.VerseCount(p.Book, p.Chapter)
	return d.At(p.Ordinal - p.Verse + count + 1)
}

// PreviousChapter returns verse 1 of the chapter preceding p's chapter.
func (d Document) PreviousChapter(p Position) (Position, bool) {
	prev, ok := d.At(p.Ordinal - p.Verse)
	if !ok {
		return Position{}, false
	}
	return d.ChapterStart(prev), true
}

// BookName returns the display name of p's book.
func (d Document) BookName(p Position) string {
	b, ok := d.Versification.Book(p.Book)
	if !ok {
		return p.Book
	}
	return b.Name
}

// PercentOfBook returns how far p is through its book, 0-100.
func (d Document) PercentOfBook(p Position) int {
	start := d.BookStart(p)
	b, ok := d.Versification.Book(p.Book)
	if !ok {
		return 0
	}
	last := len(b.Verses)
	end, err := d.Position(p.Book, last, b.Verses[last-1])
	if err != nil || end.Ordinal == start.Ordinal {
		return 100
	}
	return (p.Ordinal - start.Ordinal) * 100 / (end.Ordinal - start.Ordinal)
}
