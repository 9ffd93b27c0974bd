package main

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/bible-speak/internal/cache"
	"github.com/dgnsrekt/bible-speak/internal/osis"
	"github.com/dgnsrekt/bible-speak/internal/store"
	"github.com/dgnsrekt/bible-speak/speak"
	"github.com/dgnsrekt/bible-speak/verse"
)

// session wires a navigator to the library, the text cache and the
// position store selected by the flags and config.
type session struct {
	nav     *speak.Navigator
	library *osis.Library
	content *cache.Source
	store   store.Store
}

// loadSettings reads the speak section of the config file and applies
// BIBLESPEAK_* environment overrides on top.
func loadSettings() (speak.Settings, error) {
	cfg := speak.LoadConfigFromViper()
	if err := env.Parse(&cfg); err != nil {
		return speak.Settings{}, fmt.Errorf("error parsing environment: %w", err)
	}
	return cfg.ToSettings()
}

func openSession() (*session, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	lib := osis.NewLibrary(log.WithPrefix("osis"))
	if err := lib.LoadDir(libraryDir); err != nil {
		return nil, fmt.Errorf("unable to load library: %w", err)
	}
	if documentID != "" {
		if err := lib.SetDefault(documentID); err != nil {
			return nil, err
		}
	}

	st, err := store.Open(storeBackend, dataDir)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s store: %w", storeBackend, err)
	}

	content := cache.NewSource(lib, cacheSize)
	nav, err := speak.NewNavigator(speak.Dependencies{
		Content:   content,
		Traverser: verse.Traverser{},
		Store:     st,
		Library:   lib,
		Logger:    log.WithPrefix("speak"),
	}, settings)
	if err != nil {
		st.Close()
		return nil, err
	}
	nav.Subscribe(logEvent)

	return &session{nav: nav, library: lib, content: content, store: st}, nil
}

// document returns the document named by --document, or the one the
// navigator is reading.
func (s *session) document() (verse.Document, error) {
	if documentID != "" {
		doc, ok := s.library.Document(documentID)
		if !ok {
			return verse.Document{}, fmt.Errorf("%w: %s", speak.ErrDocumentUnavailable, documentID)
		}
		return doc, nil
	}
	if doc := s.nav.Document(); !doc.IsZero() {
		return doc, nil
	}
	doc, _ := s.library.Default()
	return doc, nil
}

func (s *session) Close() error {
	stats := s.content.Stats()
	log.Debug("Verse cache", "hits", stats.Hits, "misses", stats.Misses, "evictions", stats.Evictions)
	return s.store.Close()
}

func logEvent(e speak.Event) {
	kv := []any{"session", e.SessionID, "state", e.State}
	if !e.Range.IsZero() {
		kv = append(kv, "range", e.Range)
	}
	if e.Err != nil {
		kv = append(kv, "err", e.Err)
	}

	var serr *speak.Error
	switch {
	case !speak.IsRecoverableError(e.Err),
		errors.As(e.Err, &serr) && serr.Severity == speak.SeverityError:
		log.Error(e.Type.String(), kv...)
	case e.Type == speak.EventRestoreFallback:
		log.Warn(e.Type.String(), kv...)
	default:
		log.Debug(e.Type.String(), kv...)
	}
}
