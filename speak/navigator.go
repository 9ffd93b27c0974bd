// Package speak turns a scripture document into an ordered, resumable stream
// of speakable chunks and navigates it verse by verse.
package speak

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/bible-speak/verse"
	"github.com/google/uuid"
)

// Dependencies are the collaborators a Navigator needs. Content, Traverser
// and Store are required.
type Dependencies struct {
	Content   ContentSource
	Traverser Traverser
	Store     PersistedStore
	Library   Library    // required for RestoreState
	Announcer *Announcer // defaults to NewAnnouncer()
	Logger    *log.Logger
}

// Navigator is the reading session API used by a speech host. It is not
// safe for concurrent use; the host serializes calls.
type Navigator struct {
	// Core components
	chunker *Chunker
	tracker *Tracker
	library Library

	// State management
	machine   *StateMachine
	session   uuid.UUID
	endQueued bool

	// Configuration
	staged   Settings
	settings Settings

	listeners listeners
	logger    *log.Logger
}

// NewNavigator creates a navigator. The settings are staged and take effect
// at the first SetupReading or RestoreState.
func NewNavigator(deps Dependencies, settings Settings) (*Navigator, error) {
	switch {
	case deps.Content == nil:
		return nil, fmt.Errorf("%w: content source", ErrMissingDependency)
	case deps.Traverser == nil:
		return nil, fmt.Errorf("%w: traverser", ErrMissingDependency)
	case deps.Store == nil:
		return nil, fmt.Errorf("%w: persisted store", ErrMissingDependency)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("speak")
	}

	n := &Navigator{
		chunker:  NewChunker(deps.Content, deps.Traverser, deps.Announcer, logger),
		tracker:  NewTracker(deps.Store, logger),
		library:  deps.Library,
		machine:  NewStateMachine(),
		staged:   settings,
		settings: settings,
		logger:   logger,
	}
	n.setupStateMachine()

	return n, nil
}

func (n *Navigator) setupStateMachine() {
	n.machine.OnEnter(StateExhausted, func(from StateType) {
		if from != StateExhausted {
			n.logger.Info("Reached end of document", "document", n.tracker.Document().ID)
		}
	})
}

// Subscribe registers a listener and returns a function removing it.
func (n *Navigator) Subscribe(fn Listener) (unsubscribe func()) {
	return n.listeners.add(fn)
}

// UpdateSettings stages new settings for the next session. The running
// session keeps its settings.
func (n *Navigator) UpdateSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	n.staged = s
	return nil
}

// Settings returns the settings of the running session.
func (n *Navigator) Settings() Settings {
	return n.settings
}

// State returns the current session state.
func (n *Navigator) State() StateType {
	return n.machine.Current()
}

// SessionID identifies the running session; it changes on every
// SetupReading.
func (n *Navigator) SessionID() uuid.UUID {
	return n.session
}

// Document returns the document being read.
func (n *Navigator) Document() verse.Document {
	return n.tracker.Document()
}

// SetupReading starts a new session at pos, discarding any existing one.
// The position is persisted before any text is produced.
func (n *Navigator) SetupReading(doc verse.Document, pos verse.Position) error {
	if !doc.Contains(pos) {
		return fmt.Errorf("%w: %s in %s", ErrVersificationMismatch, pos, doc.ID)
	}

	n.settings = n.staged
	n.chunker.SetTerminals(n.settings.TerminalMarks)
	n.session = uuid.New()
	n.endQueued = false

	err := n.tracker.Reset(doc, pos)
	n.machine.Transition(StatePositioned)

	n.logger.Debug("Reading session started", "session", n.session, "document", doc.ID, "verse", pos)
	n.publish(EventSessionStarted, nil, nil)
	n.persistFailed(err)
	return nil
}

// NextTextToSpeak returns the next chunk. ok is false when there is no
// session or the document has no more content.
func (n *Navigator) NextTextToSpeak() (chunk SpeechChunk, ok bool) {
	if n.machine.Current() == StateUninitialized {
		n.logger.Debug("Next text requested without a session", "err", ErrNotInitialized)
		return SpeechChunk{}, false
	}

	chunk, ok = n.tracker.Pop()
	if !ok {
		frontier, atEnd := n.tracker.Frontier()
		if atEnd {
			n.exhaust()
			return SpeechChunk{}, false
		}

		a, more := n.chunker.Assemble(n.tracker.Document(), frontier, n.settings)
		if !more {
			n.tracker.MarkEnd()
			n.exhaust()
			return SpeechChunk{}, false
		}
		n.tracker.Buffer(a)
		chunk, _ = n.tracker.Pop()
	}

	err := n.tracker.RecordEmission(chunk)
	n.machine.Transition(StateEmitting)
	n.endQueued = false

	n.publish(EventChunkEmitted, &chunk, nil)
	n.persistFailed(err)
	return chunk, true
}

func (n *Navigator) exhaust() {
	n.machine.Transition(StateExhausted)
	if !n.endQueued {
		n.endQueued = true
		n.publish(EventEndOfDocument, nil, nil)
	}
}

// VerseRange returns the range of the most recently emitted chunk, or the
// single verse the session is positioned at.
func (n *Navigator) VerseRange() verse.Range {
	return n.tracker.Current()
}

// Pause fixes the resumable position after fraction (0..1) of the last
// chunk was spoken. It does not stop audio.
func (n *Navigator) Pause(fraction float64) {
	if n.machine.Current() == StateUninitialized {
		return
	}

	pos, err := n.tracker.RecordPause(fraction, n.settings.PauseWeighting)
	n.machine.Transition(StatePositioned)

	n.logger.Debug("Paused", "verse", pos, "fraction", fraction)
	n.publish(EventPaused, nil, nil)
	n.persistFailed(err)
}

// Forward moves ahead by amount. RewindDefault uses the session setting.
func (n *Navigator) Forward(amount RewindAmount) {
	n.move(amount, true)
}

// Rewind moves back by amount. RewindDefault uses the session setting.
func (n *Navigator) Rewind(amount RewindAmount) {
	n.move(amount, false)
}

func (n *Navigator) move(amount RewindAmount, forward bool) {
	if n.machine.Current() == StateUninitialized {
		return
	}
	if amount == RewindDefault {
		amount = n.settings.RewindAmount
	}
	if amount == RewindNone {
		return
	}

	doc := n.tracker.Document()
	origin := n.tracker.Origin()

	var (
		target  verse.Position
		clamped bool
	)
	switch amount {
	case RewindOneVerse:
		target, clamped = n.step(doc, origin, 1, forward)
	case RewindTenVerses:
		target, clamped = n.step(doc, origin, 10, forward)
	case RewindFullChapter:
		// a rewind first returns to the last heading read
		if title, ok := n.tracker.LastTitle(); ok && !forward && title.Before(origin) {
			target = title
			break
		}
		target, clamped = chapterJump(doc, origin, forward)
	default:
		n.logger.Warn("Unknown rewind amount", "amount", amount)
		return
	}

	var diag error
	if clamped {
		diag = NewError(ErrNavigationOutOfRange, "navigator", amount.String()).
			WithSeverity(SeverityInfo).
			WithContext("from", origin.OSISRef()).
			WithContext("to", target.OSISRef())
		n.logger.Debug("Navigation clamped at document edge", "from", origin, "to", target)
	}

	err := n.tracker.RecordJump(target)
	n.machine.Transition(StatePositioned)

	n.publish(EventJumped, nil, diag)
	n.persistFailed(err)
}

// step walks count verses with the traverser, stopping at the document edge.
func (n *Navigator) step(doc verse.Document, from verse.Position, count int, forward bool) (verse.Position, bool) {
	r := verse.Single(from)
	for i := 0; i < count; i++ {
		var (
			next verse.Range
			ok   bool
		)
		if forward {
			next, ok = n.chunker.traverser.Next(doc, r)
		} else {
			next, ok = n.chunker.traverser.Previous(doc, r)
		}
		if !ok {
			return r.Start, true
		}
		r = next
	}
	return r.Start, false
}

// chapterJump moves to verse 1 of the next chapter, or back to verse 1 of
// the current chapter (the previous one when already at verse 1).
func chapterJump(doc verse.Document, from verse.Position, forward bool) (verse.Position, bool) {
	if forward {
		next, ok := doc.NextChapter(from)
		if !ok {
			return doc.Last(), true
		}
		return next, false
	}

	if from.Verse > 1 {
		return doc.ChapterStart(from), false
	}
	prev, ok := doc.PreviousChapter(from)
	if !ok {
		return doc.First(), true
	}
	return prev, false
}

// RestoreState resumes the persisted position. It reports whether the
// persisted position was used; otherwise the library's default start is.
func (n *Navigator) RestoreState() bool {
	if n.library == nil {
		n.logger.Error("Cannot restore without a library", "err", ErrMissingDependency)
		return false
	}

	doc, pos, err := n.loadPersisted()
	if err == nil {
		err = n.SetupReading(doc, pos)
	}
	if err == nil {
		n.logger.Info("Restored reading position", "document", doc.ID, "verse", pos)
		return true
	}

	defDoc, defPos := n.library.Default()
	fallback := !errors.Is(err, errNothingPersisted)
	if fallback {
		n.logger.Warn("Falling back to default position", "document", defDoc.ID, "verse", defPos, "err", err)
	}
	if setupErr := n.SetupReading(defDoc, defPos); setupErr != nil {
		n.logger.Error("Default position is invalid", "err", setupErr)
		return false
	}
	if fallback {
		n.publish(EventRestoreFallback, nil, err)
	}
	return false
}

// errNothingPersisted marks an empty store, which is not worth a warning.
var errNothingPersisted = errors.New("no persisted position")

func (n *Navigator) loadPersisted() (verse.Document, verse.Position, error) {
	store := n.tracker.store

	docID, okDoc, err := store.Get(KeyDocument)
	if err != nil {
		return verse.Document{}, verse.Position{}, NewError(err, "navigator", "restore").WithSeverity(SeverityError)
	}
	ref, okRef, err := store.Get(KeyVerse)
	if err != nil {
		return verse.Document{}, verse.Position{}, NewError(err, "navigator", "restore").WithSeverity(SeverityError)
	}
	if !okDoc || !okRef || strings.TrimSpace(docID) == "" || strings.TrimSpace(ref) == "" {
		return verse.Document{}, verse.Position{}, errNothingPersisted
	}

	doc, ok := n.library.Document(docID)
	if !ok {
		return verse.Document{}, verse.Position{}, NewError(ErrDocumentUnavailable, "navigator", "restore").
			WithContext("document", docID)
	}

	parsed, err := verse.ParseRef(ref)
	if err != nil {
		return verse.Document{}, verse.Position{}, NewError(fmt.Errorf("%w: %v", ErrPersistenceCorrupt, err), "navigator", "restore").
			WithContext("verse", ref)
	}
	if parsed.Chapter == 0 || parsed.Verse == 0 {
		return verse.Document{}, verse.Position{}, NewError(ErrPersistenceCorrupt, "navigator", "restore").
			WithContext("verse", ref)
	}

	pos, err := doc.Resolve(parsed)
	if err != nil {
		return verse.Document{}, verse.Position{}, NewError(fmt.Errorf("%w: %v", ErrVersificationMismatch, err), "navigator", "restore").
			WithContext("document", docID).
			WithContext("verse", ref)
	}
	return doc, pos, nil
}

// ClearPersistedState removes the stored position.
func (n *Navigator) ClearPersistedState() error {
	return n.tracker.Clear()
}

// Actions returns the controls that make sense in the current state.
func (n *Navigator) Actions() Actions {
	var a Actions
	if n.library != nil {
		a = a.With(ActionRestore)
	}

	switch n.machine.Current() {
	case StateUninitialized:
		return a
	case StatePositioned:
		a = a.With(ActionSpeak)
	case StateEmitting:
		a = a.With(ActionSpeak).With(ActionPause)
	case StateExhausted:
		a = a.With(ActionPause)
	}

	if n.settings.RewindAmount != RewindNone {
		a = a.With(ActionRewind).With(ActionForward)
	}
	return a
}

// StatusFlags select the parts of StatusText.
type StatusFlags uint8

const (
	StatusShowPercent StatusFlags = 1 << iota
	StatusShowDocument
)

// StatusText describes the current position, e.g. "Rom.5.1 - 12% - KJV".
func (n *Navigator) StatusText(flags StatusFlags) string {
	if n.machine.Current() == StateUninitialized {
		return ""
	}

	r := n.tracker.Current()
	parts := []string{r.OSISRef()}

	doc := n.tracker.Document()
	if flags&StatusShowPercent != 0 {
		parts = append(parts, fmt.Sprintf("%d%%", doc.PercentOfBook(r.Start)))
	}
	if flags&StatusShowDocument != 0 {
		parts = append(parts, doc.ID)
	}
	return strings.Join(parts, " - ")
}

func (n *Navigator) publish(t EventType, chunk *SpeechChunk, err error) {
	n.listeners.publish(Event{
		Type:      t,
		SessionID: n.session,
		Document:  n.tracker.Document().ID,
		Range:     n.tracker.Current(),
		State:     n.machine.Current(),
		Chunk:     chunk,
		Err:       err,
		Time:      time.Now(),
	})
}

// persistFailed reports a store write failure without interrupting reading.
func (n *Navigator) persistFailed(err error) {
	if err == nil {
		return
	}
	n.logger.Error("Could not persist reading position", "err", err)
	n.publish(EventPersistFailed, nil, NewError(err, "tracker", "persist").WithSeverity(SeverityError))
}
