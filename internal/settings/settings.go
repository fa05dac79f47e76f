// Package settings loads and persists the parley settings document, the
// host-owned file that the tag collection lives in.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/parleychat/parley/internal/log"
	"github.com/parleychat/parley/internal/pubsub"
	"github.com/parleychat/parley/internal/tags"
)

// DefaultDebounce is the save debounce window used when none is configured.
const DefaultDebounce = 500 * time.Millisecond

// Document is the on-disk shape of the settings file.
type Document struct {
	Tags  []*tags.Tag `yaml:"tags"`
	Theme string      `yaml:"theme,omitempty"`
}

// StoreEvent is the payload published on the store's broker. The event type
// distinguishes saves, save failures, and reloads.
type StoreEvent struct {
	Path     string
	TagCount int
	Err      string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithDebounce overrides the save debounce window.
func WithDebounce(d time.Duration) StoreOption {
	return func(s *Store) {
		s.debounce = d
	}
}

// Store owns the settings document and its persistence. It implements
// tags.Collection: saves requested through it are debounced and written
// atomically, with outcomes published on the broker rather than returned.
type Store struct {
	path     string
	debounce time.Duration

	mu  sync.RWMutex
	doc Document

	saver  *Saver
	broker *pubsub.Broker[StoreEvent]
}

// New creates a store for the settings file at path. Call Load before use.
func New(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:     path,
		debounce: DefaultDebounce,
		broker:   pubsub.NewBroker[StoreEvent](),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.saver = NewSaver(s.debounce, func() {
		_ = s.save()
	})
	return s
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// Broker exposes the store's event broker.
func (s *Store) Broker() *pubsub.Broker[StoreEvent] {
	return s.broker
}

// Load reads the settings file into memory. A missing file is not an
// error; the store starts with an empty document.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.mu.Lock()
		s.doc = Document{}
		s.mu.Unlock()
		log.Debug(log.CatSettings, "No settings file, starting empty", "path", s.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing settings: %w", err)
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()

	log.Debug(log.CatSettings, "Loaded settings", "path", s.path, "tags", len(doc.Tags))
	return nil
}

// Reload re-reads the settings file after an external edit and publishes
// a reload event. The in-memory document is replaced wholesale.
func (s *Store) Reload() error {
	if err := s.Load(); err != nil {
		return err
	}

	s.mu.RLock()
	count := len(s.doc.Tags)
	s.mu.RUnlock()

	s.broker.Publish(pubsub.ReloadedEvent, StoreEvent{Path: s.path, TagCount: count})
	log.Info(log.CatSettings, "Settings reloaded", "path", s.path, "tags", count)
	return nil
}

// Tags returns the current tag collection. Implements tags.Collection.
func (s *Store) Tags() []*tags.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Tags
}

// Append adds a tag to the end of the collection. Implements tags.Collection.
func (s *Store) Append(t *tags.Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Tags = append(s.doc.Tags, t)
}

// RequestSave schedules a debounced save. Implements tags.Collection. The
// call never blocks and never reports an outcome; failures are logged and
// published on the broker.
func (s *Store) RequestSave() {
	s.saver.Request()
}

// SavePending reports whether a debounced save is waiting to fire.
func (s *Store) SavePending() bool {
	return s.saver.Pending()
}

// Theme returns the theme recorded in the document, if any.
func (s *Store) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Theme
}

// Flush saves the document immediately, cancelling any pending debounce.
func (s *Store) Flush() error {
	s.saver.Stop()
	return s.save()
}

// Close runs any pending save, stops the saver, and closes the broker.
func (s *Store) Close() {
	s.saver.Flush()
	s.saver.Stop()
	s.broker.Close()
}

// save marshals the document and writes it atomically: encode to a temp
// file in the target directory, then rename over the settings file.
func (s *Store) save() error {
	s.mu.RLock()
	doc := Document{
		Tags:  append([]*tags.Tag(nil), s.doc.Tags...),
		Theme: s.doc.Theme,
	}
	s.mu.RUnlock()

	if err := s.write(doc); err != nil {
		log.ErrorErr(log.CatSettings, "Failed to save settings", err, "path", s.path)
		s.broker.Publish(pubsub.SaveFailedEvent, StoreEvent{Path: s.path, TagCount: len(doc.Tags), Err: err.Error()})
		return err
	}

	log.Debug(log.CatSettings, "Saved settings", "path", s.path, "tags", len(doc.Tags))
	s.broker.Publish(pubsub.SavedEvent, StoreEvent{Path: s.path, TagCount: len(doc.Tags)})
	return nil
}

func (s *Store) write(doc Document) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".parley.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	encoder := yaml.NewEncoder(temp)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		_ = encoder.Close()
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := encoder.Close(); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("flushing settings: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
