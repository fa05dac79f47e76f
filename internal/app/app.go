// Package app contains the root application model.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/internal/log"
	"github.com/parleychat/parley/internal/pubsub"
	"github.com/parleychat/parley/internal/settings"
	"github.com/parleychat/parley/internal/ui/console"
	"github.com/parleychat/parley/internal/watcher"
)

// Model is the root application state. It composes the console and feeds
// it events from the settings store broker and the file watcher.
type Model struct {
	console console.Model
	store   *settings.Store

	// Broker subscriptions feeding the update loop. The shared context
	// tears every subscription down on Close.
	listenerCtx    context.Context
	listenerCancel context.CancelFunc
	storeListener  *pubsub.ContinuousListener[settings.StoreEvent]

	// File watcher for settings auto-reload
	watcherHandle   *watcher.Watcher
	watcherListener *pubsub.ContinuousListener[watcher.WatcherEvent]
}

// Config wires the root model.
type Config struct {
	Console console.Model
	Store   *settings.Store

	// AutoReload watches the settings file and reloads the store when
	// something else edits it.
	AutoReload bool
}

// New creates the root model and subscribes to the store's broker. With
// AutoReload it also starts a settings file watcher; watcher init errors
// are logged and skipped, the app works without auto-reload.
func New(cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		console:        cfg.Console,
		store:          cfg.Store,
		listenerCtx:    ctx,
		listenerCancel: cancel,
	}

	if cfg.Store != nil {
		m.storeListener = pubsub.NewContinuousListener(ctx, cfg.Store.Broker())
	}

	if cfg.AutoReload && cfg.Store != nil {
		w, err := watcher.New(watcher.DefaultConfig(cfg.Store.Path()))
		if err != nil {
			log.ErrorErr(log.CatWatcher, "Failed to create settings watcher", err)
			return m
		}
		if err := w.Start(); err != nil {
			log.ErrorErr(log.CatWatcher, "Failed to start settings watcher", err)
			_ = w.Stop()
			return m
		}
		m.watcherHandle = w
		m.watcherListener = pubsub.NewContinuousListener(ctx, w.Broker())
	}

	return m
}

// Console returns the composed console model.
func (m Model) Console() console.Model {
	return m.console
}

// Watching reports whether the settings file watcher is running.
func (m Model) Watching() bool {
	return m.watcherHandle != nil
}

// Init implements tea.Model and starts the broker listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.console.Init()}

	if m.storeListener != nil {
		cmds = append(cmds, m.storeListener.Listen())
	}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model. Broker events are handled here; everything
// else flows into the console.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pubsub.Event[settings.StoreEvent]:
		return m.handleStoreEvent(msg)

	case pubsub.Event[watcher.WatcherEvent]:
		return m.handleWatcherEvent(msg)
	}

	var cmd tea.Cmd
	m.console, cmd = m.console.Update(msg)
	return m, cmd
}

// handleStoreEvent translates store broker events into console messages
// and re-arms the listener.
func (m Model) handleStoreEvent(msg pubsub.Event[settings.StoreEvent]) (tea.Model, tea.Cmd) {
	var conMsg tea.Msg
	switch msg.Type {
	case pubsub.SavedEvent:
		conMsg = console.SettingsSavedMsg{TagCount: msg.Payload.TagCount}
	case pubsub.SaveFailedEvent:
		conMsg = console.SettingsSaveFailedMsg{Err: msg.Payload.Err}
	case pubsub.ReloadedEvent:
		conMsg = console.SettingsReloadedMsg{TagCount: msg.Payload.TagCount}
	}

	var cmd tea.Cmd
	if conMsg != nil {
		m.console, cmd = m.console.Update(conMsg)
	}
	return m, tea.Batch(cmd, m.storeListener.Listen())
}

// handleWatcherEvent reloads the store after an external edit. The reload
// outcome reaches the console through the store broker.
func (m Model) handleWatcherEvent(msg pubsub.Event[watcher.WatcherEvent]) (tea.Model, tea.Cmd) {
	if m.watcherListener == nil {
		return m, nil
	}

	switch msg.Payload.Type {
	case watcher.SettingsChanged:
		log.Debug(log.CatWatcher, "Settings file changed, reloading", "path", msg.Payload.Path)
		if err := m.store.Reload(); err != nil {
			log.ErrorErr(log.CatSettings, "Failed to reload settings", err)
		}

	case watcher.WatcherError:
		log.Warn(log.CatWatcher, "Watcher error received", "error", msg.Payload.Error)
	}

	return m, m.watcherListener.Listen()
}

// View implements tea.Model.
func (m Model) View() string {
	return m.console.View()
}

// Close releases resources. The watcher stops first so the final flush
// does not trigger a reload, then the store flushes and closes.
func (m *Model) Close() error {
	m.listenerCancel()

	var firstErr error
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			firstErr = err
		}
		m.watcherHandle = nil
	}

	if m.store != nil {
		m.store.Close()
	}
	return firstErr
}
