package osis

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

var (
	osisTextExpr = xpath.MustCompile("//osisText")
	bookDivExpr  = xpath.MustCompile(`//div[@type="book"][@osisID]`)
	workTitle    = xpath.MustCompile(`//header/work/title`)
)

// Text is one parsed OSIS document.
type Text struct {
	ID       string
	Name     string
	Language string
	Books    []string          // OSIS book IDs in document order
	BookName map[string]string // book ID to the title the text gives it

	verses map[string]string // osisID to text
	titles map[string]string // osisID to the heading spoken before it
}

// Verse returns the text of the verse with the given OSIS ID.
func (t *Text) Verse(osisID string) string {
	return t.verses[osisID]
}

// Title returns the heading that precedes the verse, if any.
func (t *Text) Title(osisID string) string {
	return t.titles[osisID]
}

// Parse reads an OSIS document.
func Parse(r io.Reader) (*Text, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing OSIS: %w", err)
	}

	root := xmlquery.QuerySelector(doc, osisTextExpr)
	if root == nil {
		return nil, fmt.Errorf("parsing OSIS: no osisText element")
	}

	t := &Text{
		ID:       root.SelectAttr("osisIDWork"),
		Language: langAttr(root),
		BookName: make(map[string]string),
		verses:   make(map[string]string),
		titles:   make(map[string]string),
	}
	if t.ID == "" {
		return nil, fmt.Errorf("parsing OSIS: osisText has no osisIDWork")
	}
	if n := xmlquery.QuerySelector(root, workTitle); n != nil {
		t.Name = collapse(n.InnerText())
	}
	if t.Name == "" {
		t.Name = t.ID
	}

	for _, div := range xmlquery.QuerySelectorAll(root, bookDivExpr) {
		id := div.SelectAttr("osisID")
		t.Books = append(t.Books, id)
		if title := directTitle(div); title != "" {
			t.BookName[id] = title
		}
	}

	w := &walker{text: t, seen: make(map[string]bool)}
	w.walk(root)
	w.finish()

	if len(t.Books) == 0 {
		t.Books = w.books
	}

	return t, nil
}

// walker collects verse text in document order. Verses may be containers
// (<verse osisID="..">text</verse>) or milestones (<verse sID=".."/> text
// <verse eID=".."/>).
type walker struct {
	text    *Text
	current string
	buf     strings.Builder
	heading []string

	books []string // in order of first verse, for texts without book divs
	seen  map[string]bool
}

func (w *walker) walk(n *xmlquery.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if w.current != "" {
				w.buf.WriteString(c.Data)
				w.buf.WriteByte(' ')
			}
		case xmlquery.ElementNode:
			w.element(c)
		}
	}
}

func (w *walker) element(n *xmlquery.Node) {
	switch n.Data {
	case "header", "note":
		return
	case "title":
		if spokenTitle(n) {
			if s := collapse(n.InnerText()); s != "" {
				w.heading = append(w.heading, s)
			}
		}
		return
	case "verse":
		switch {
		case n.SelectAttr("eID") != "":
			w.finish()
		case n.SelectAttr("sID") != "":
			w.start(n.SelectAttr("osisID"), n.SelectAttr("sID"))
		default:
			w.start(n.SelectAttr("osisID"), "")
			w.walk(n)
			w.finish()
		}
		return
	}
	w.walk(n)
}

func (w *walker) start(osisID, sID string) {
	w.finish()

	if osisID == "" {
		osisID = sID
	}
	// merged verses such as "Gen.1.1 Gen.1.2" keep their text on the first
	ids := strings.Fields(osisID)
	if len(ids) == 0 {
		return
	}
	w.current = ids[0]

	if book, _, _ := strings.Cut(w.current, "."); !w.seen[book] {
		w.seen[book] = true
		w.books = append(w.books, book)
	}

	if len(w.heading) > 0 {
		w.text.titles[w.current] = strings.Join(w.heading, " ")
		w.heading = nil
	}
}

func (w *walker) finish() {
	if w.current == "" {
		return
	}
	if s := collapse(w.buf.String()); s != "" {
		w.text.verses[w.current] = s
	}
	w.current = ""
	w.buf.Reset()
}

// spokenTitle reports whether a title is a heading within the text rather
// than the name of the work or a book.
func spokenTitle(n *xmlquery.Node) bool {
	switch n.SelectAttr("type") {
	case "main", "runningHead", "chapter":
		return false
	}
	if p := n.Parent; p != nil && p.Data == "div" && p.SelectAttr("type") == "book" {
		return false
	}
	return true
}

func directTitle(div *xmlquery.Node) string {
	for c := div.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == "title" && c.SelectAttr("type") != "main" {
			return collapse(c.InnerText())
		}
	}
	return ""
}

// langAttr reads xml:lang, whose namespace the parser may or may not have
// resolved.
func langAttr(n *xmlquery.Node) string {
	for _, a := range n.Attr {
		if a.Name.Local == "lang" {
			return a.Value
		}
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
