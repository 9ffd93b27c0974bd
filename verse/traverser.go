package verse

// Traverser steps verse by verse through a document's versification,
// rolling over chapter and book boundaries.
type Traverser struct{}

// Next returns the single-verse range following r. ok is false at the end of
// the document.
func (Traverser) Next(doc Document, r Range) (Range, bool) {
	p, clamped := doc.Offset(r.End, 1)
	if clamped {
		return Range{}, false
	}
	return Single(p), true
}

// Previous returns the single-verse range preceding r. ok is false at the
// start of the document.
func (Traverser) Previous(doc Document, r Range) (Range, bool) {
	p, clamped := doc.Offset(r.Start, -1)
	if clamped {
		return Range{}, false
	}
	return Single(p), true
}
