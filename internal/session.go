package internal

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"world-sync/contract"
	"world-sync/domain/event"
	"world-sync/friendrequest"
	"world-sync/infrastructure/bus"
	"world-sync/inventory"
	"world-sync/messenger"
	"world-sync/moderation"
	"world-sync/projection"
	"world-sync/repositories"
	"world-sync/roster"
	"world-sync/runtime"
	"world-sync/runtime/workers"
	"world-sync/trade"

	"github.com/dgraph-io/badger/v4"
)

// Session is one connected client: subsystems, runtime and the stores fed by the fanout.
type Session struct {
	Log          *slog.Logger
	Orchestrator *runtime.Orchestrator
	Directory    *roster.Directory
	Trade        *trade.Engine
	Messenger    *messenger.Synchronizer
	Friends      *friendrequest.Widget
	Inventory    *inventory.Store
	Journal      *repositories.Journal
	Index        *repositories.MessageIndex
	Timeline     *projection.Timeline
	Health       *workers.HealthMonitor
	Capacity     *workers.ChannelCapacityWorker
	Counter      *event.Counter

	db *badger.DB
}

// Outputs are the side effects a session talks to.
type Outputs struct {
	Commands io.Writer
	Notifier contract.Notifier
	Sound    contract.SoundPlayer
	// Dictionaries is the directory CENSORED_DIR points to, nil when unset.
	Dictionaries fs.FS
}

func NewSession(config Config, log *slog.Logger, out Outputs) (*Session, error) {
	filter, err := newTextFilter(config, log, out.Dictionaries)
	if err != nil {
		return nil, err
	}

	directory := roster.NewDirectory(log)
	identity := roster.Identity(config.LocalUserID)
	sender := bus.NewCommandWriter(out.Commands, log)
	store := inventory.NewStore(log)

	engine := trade.NewEngine(log, sender, store, identity, directory, out.Notifier)
	synchronizer := messenger.NewSynchronizer(log, sender, directory, identity, out.Notifier, out.Sound, filter)
	widget := friendrequest.NewWidget(log, sender, directory)
	router := runtime.NewRouter(log, engine, synchronizer, widget, directory, store)

	db, err := repositories.OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("journal opening failed: %w", err)
	}
	index, err := repositories.NewMessageIndex(filter, log, config.SearchLimit)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Session{
		Log:       log,
		Directory: directory,
		Trade:     engine,
		Messenger: synchronizer,
		Friends:   widget,
		Inventory: store,
		Journal:   repositories.NewJournal(db, log, config.LimitEntries),
		Index:     index,
		Timeline:  projection.NewTimeline(config.TimelineLimit),
		Health:    workers.NewHealthMonitor(log, config.HealthInterval),
		Counter:   event.NewCounter(),
		db:        db,
	}
	s.Orchestrator = runtime.NewOrchestrator(log, workers.NewSupervisor(log), runtime.NewRegistry(),
		router, config.BufferSize, config.SinkTimeout)
	s.Capacity = workers.NewChannelCapacityWorker(log, s.Orchestrator.Channels(), config.HealthInterval)
	s.Orchestrator.Add(s.Journal, s.Index, s.Timeline,
		workers.NewTelemetrySink(event.NewCountingHandler(log, s.Counter)))
	s.Orchestrator.AddWorkers(s.Health, s.Capacity)
	return s, nil
}

// newTextFilter returns a nil filter when moderation is not configured.
func newTextFilter(config Config, log *slog.Logger, dictionaries fs.FS) (contract.TextFilter, error) {
	if !config.ModerationEnabled() {
		return nil, nil
	}
	char, err := config.CharacterRune()
	if err != nil {
		return nil, err
	}

	words := config.Words()
	if config.CensoredDir != "" && dictionaries != nil {
		data, err := moderation.NewCensoredLoader(dictionaries).LoadAll(".", words...)
		if err != nil {
			return nil, fmt.Errorf("censored words loading failed: %w", err)
		}
		log.Info("Censored dictionaries loaded", "languages", data.Languages, "words", len(data.Words))
		words = data.Words
	}

	moderator, err := moderation.NewModerator(words, char, log)
	if err != nil {
		return nil, err
	}
	return moderator, nil
}

// Run blocks until ctx is done.
func (s *Session) Run(ctx context.Context) {
	s.Orchestrator.Start(ctx)
}

// Shutdown refuses new input and returns once every queued event reached the sinks.
func (s *Session) Shutdown(ctx context.Context) error {
	return s.Orchestrator.Shutdown(ctx)
}

func (s *Session) Close() error {
	s.Orchestrator.Stop()
	indexErr := s.Index.Close()
	if err := s.db.Close(); err != nil {
		return err
	}
	return indexErr
}
