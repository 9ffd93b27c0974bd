package speak

import (
	"regexp"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys are the English texts.
const (
	msgBookChange    = "Book of %s. Chapter %d. "
	msgChapterChange = "Chapter %d. "
	msgOrdinal1      = "First %s"
	msgOrdinal2      = "Second %s"
	msgOrdinal3      = "Third %s"
)

var translations = map[language.Tag]map[string]string{
	language.English: {
		msgBookChange:    msgBookChange,
		msgChapterChange: msgChapterChange,
		msgOrdinal1:      msgOrdinal1,
		msgOrdinal2:      msgOrdinal2,
		msgOrdinal3:      msgOrdinal3,
	},
	language.German: {
		msgBookChange:    "Buch %s. Kapitel %d. ",
		msgChapterChange: "Kapitel %d. ",
		msgOrdinal1:      "Erster %s",
		msgOrdinal2:      "Zweiter %s",
		msgOrdinal3:      "Dritter %s",
	},
	language.Finnish: {
		msgBookChange:    "Kirja %s. Luku %d. ",
		msgChapterChange: "Luku %d. ",
		msgOrdinal1:      "Ensimmäinen %s",
		msgOrdinal2:      "Toinen %s",
		msgOrdinal3:      "Kolmas %s",
	},
	language.Spanish: {
		msgBookChange:    "Libro de %s. Capítulo %d. ",
		msgChapterChange: "Capítulo %d. ",
		msgOrdinal1:      "Primera de %s",
		msgOrdinal2:      "Segunda de %s",
		msgOrdinal3:      "Tercera de %s",
	},
}

// ordinalPrefix matches numbered book names such as "1 John" or "2. Mooseksen kirja".
var ordinalPrefix = regexp.MustCompile(`^([1-3])\.?\s*(\S.*)$`)

// Announcer renders localized structural announcements.
type Announcer struct {
	catalog *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
}

// NewAnnouncer creates an announcer with the built-in translations.
func NewAnnouncer() *Announcer {
	cat := catalog.NewBuilder(catalog.Fallback(language.English))

	// English first so the matcher falls back to it
	tags := []language.Tag{language.English, language.German, language.Finnish, language.Spanish}
	for _, tag := range tags {
		for key, msg := range translations[tag] {
			_ = cat.SetString(tag, key, msg)
		}
	}

	return &Announcer{
		catalog: cat,
		tags:    tags,
		matcher: language.NewMatcher(tags),
	}
}

func (a *Announcer) printer(tag language.Tag) *message.Printer {
	_, i, _ := a.matcher.Match(tag)
	return message.NewPrinter(a.tags[i], message.Catalog(a.catalog))
}

// BookChange announces entering a new book at the given chapter.
func (a *Announcer) BookChange(tag language.Tag, bookName string, chapter int) string {
	return a.printer(tag).Sprintf(msgBookChange, a.SpokenBookName(tag, bookName), chapter)
}

// ChapterChange announces entering a new chapter.
func (a *Announcer) ChapterChange(tag language.Tag, chapter int) string {
	return a.printer(tag).Sprintf(msgChapterChange, chapter)
}

// SpokenBookName replaces a leading book number with an ordinal word, so
// "1 John" is spoken as "First John".
func (a *Announcer) SpokenBookName(tag language.Tag, name string) string {
	m := ordinalPrefix.FindStringSubmatch(name)
	if m == nil {
		return name
	}

	n, _ := strconv.Atoi(m[1])
	key := [...]string{msgOrdinal1, msgOrdinal2, msgOrdinal3}[n-1]
	return a.printer(tag).Sprintf(key, m[2])
}
