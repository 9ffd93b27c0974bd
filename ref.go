package main

import (
	"errors"

	"github.com/dgnsrekt/bible-speak/verse"
	"github.com/sahilm/fuzzy"
)

// bookNames lists the names a reader may type for each book of doc.
type bookNames []verse.Book

func (b bookNames) String(i int) string { return b[i].Name }
func (b bookNames) Len() int            { return len(b) }

// resolvePosition parses a reference such as "Ps.14.1" or "Psalms 14:1".
// An unknown book name is matched loosely, so "psalm 23" and "revel 21"
// still resolve.
func resolvePosition(doc verse.Document, s string) (verse.Position, error) {
	ref, err := verse.ParseRef(s)
	if err != nil {
		return verse.Position{}, err
	}

	pos, err := doc.Resolve(ref)
	if !errors.Is(err, verse.ErrUnknownBook) {
		return pos, err
	}

	book, ok := matchBook(doc, ref.Book)
	if !ok {
		return verse.Position{}, err
	}
	ref.Book = book.OSIS
	return doc.Resolve(ref)
}

func matchBook(doc verse.Document, name string) (verse.Book, bool) {
	books := bookNames(doc.Versification.Books())
	matches := fuzzy.FindFrom(name, books)
	if len(matches) == 0 {
		return verse.Book{}, false
	}
	return books[matches[0].Index], true
}
