package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"world-sync/domain/event"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const journalPrefix = "evt:"

type IJournal interface {
	Consume(ctx context.Context, e event.Event) error
	Entries(cursor *string) ([]Entry, *string, error)
	Replay(ctx context.Context, fn func(event.Event) error) error
}

// Entry is one applied event as recorded in the session journal.
type Entry struct {
	ID       uuid.UUID
	Seq      uint64
	At       time.Time
	Envelope event.Envelope
}

// Journal records every applied event of the session in an in-memory badger instance.
// Nothing survives the process.
type Journal struct {
	db           *badger.DB
	log          *slog.Logger
	limitEntries *int
	seq          atomic.Uint64
}

// OpenInMemory opens a badger instance without any directory.
func OpenInMemory() (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
}

func NewJournal(db *badger.DB, log *slog.Logger, limitEntries *int) *Journal {
	return &Journal{db: db, log: log, limitEntries: limitEntries}
}

// Consume stores the event under "evt:{timestamp_padded}:{seq_padded}".
// The sequence keeps events received within the same nanosecond in arrival order.
func (j *Journal) Consume(_ context.Context, e event.Event) error {
	envelope, err := event.Encode(e)
	if err != nil {
		return err
	}
	entry := Entry{
		ID:       uuid.New(),
		Seq:      j.seq.Add(1),
		At:       time.Now().UTC(),
		Envelope: envelope,
	}
	value, err := toStruct(entry)
	if err != nil {
		return err
	}
	bytes, err := proto.Marshal(value)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s%019d:%019d", journalPrefix, entry.At.UnixNano(), entry.Seq)
	return j.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// Entries pages backwards from the newest entry, or from just before cursor.
// The returned cursor is the key part of the last entry read.
func (j *Journal) Entries(cursor *string) ([]Entry, *string, error) {
	var values [][]byte
	var lastKey string
	err := j.db.View(func(txn *badger.Txn) error {
		prefix := []byte(journalPrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			seekKey = append([]byte(journalPrefix), []byte("9999999999999999999;")...)
		default:
			seekKey = append([]byte(journalPrefix), []byte(*cursor)...)
		}
		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if j.limitEntries != nil && len(values) == *j.limitEntries {
				j.log.Debug("Journal page is full", "limit", *j.limitEntries)
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefix):])
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			values = append(values, value)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	entries := make([]Entry, 0, len(values))
	for _, value := range values {
		entry, err := unmarshalEntry(value)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, entry)
	}
	return entries, &lastKey, nil
}

// Replay decodes every entry, oldest first, and hands it to fn until fn fails.
func (j *Journal) Replay(ctx context.Context, fn func(event.Event) error) error {
	return j.db.View(func(txn *badger.Txn) error {
		prefix := []byte(journalPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			entry, err := unmarshalEntry(value)
			if err != nil {
				return err
			}
			evt, err := event.Decode(entry.Envelope)
			if err != nil {
				return err
			}
			if err = fn(evt); err != nil {
				return err
			}
		}
		return nil
	})
}

func toStruct(entry Entry) (*structpb.Struct, error) {
	payload := map[string]any{}
	if len(entry.Envelope.Payload) > 0 {
		if err := json.Unmarshal(entry.Envelope.Payload, &payload); err != nil {
			return nil, err
		}
	}
	return structpb.NewStruct(map[string]any{
		"id":      entry.ID.String(),
		"seq":     float64(entry.Seq),
		"at":      entry.At.Format(time.RFC3339Nano),
		"type":    entry.Envelope.Type,
		"payload": payload,
	})
}

func unmarshalEntry(value []byte) (Entry, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(value, &s); err != nil {
		return Entry{}, err
	}
	fields := s.GetFields()
	id, err := uuid.Parse(fields["id"].GetStringValue())
	if err != nil {
		return Entry{}, err
	}
	at, err := time.Parse(time.RFC3339Nano, fields["at"].GetStringValue())
	if err != nil {
		return Entry{}, err
	}
	payload, err := json.Marshal(fields["payload"].GetStructValue().AsMap())
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		ID:  id,
		Seq: uint64(fields["seq"].GetNumberValue()),
		At:  at,
		Envelope: event.Envelope{
			Type:    fields["type"].GetStringValue(),
			Payload: payload,
		},
	}, nil
}
