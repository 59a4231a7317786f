package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"world-sync/contract"
	"world-sync/domain"
	"world-sync/domain/event"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"
)

const (
	fieldText   = "text"
	fieldSender = "sender"
	fieldKind   = "kind"
)

// Hit is one inbound message matching a search.
type Hit struct {
	ID       string
	SenderID domain.UserID
	Kind     domain.MessageKind
	Text     string
	Score    float64
}

// MessageIndex is a full-text index of inbound chat lines and room invites.
// It lives in memory and is dropped with the session.
type MessageIndex struct {
	writer *bluge.Writer
	filter contract.TextFilter
	log    *slog.Logger
	limit  int
}

// NewMessageIndex indexes text after the filter ran, the filter may be nil.
func NewMessageIndex(filter contract.TextFilter, log *slog.Logger, limit int) (*MessageIndex, error) {
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	return &MessageIndex{writer: writer, filter: filter, log: log, limit: limit}, nil
}

func (m *MessageIndex) Consume(_ context.Context, e event.Event) error {
	switch evt := e.(type) {
	case event.ChatMessageReceived:
		return m.index(evt.SenderID, domain.ChatMessage, evt.Text)
	case event.RoomInviteReceived:
		return m.index(evt.SenderID, domain.RoomInvite, evt.Text)
	}
	return nil
}

func (m *MessageIndex) index(sender domain.UserID, kind domain.MessageKind, text string) error {
	if m.filter != nil {
		text = m.filter.Censor(text)
	}
	doc := bluge.NewDocument(uuid.NewString()).
		AddField(bluge.NewTextField(fieldText, text).StoreValue()).
		AddField(bluge.NewKeywordField(fieldSender, strconv.Itoa(int(sender))).StoreValue()).
		AddField(bluge.NewKeywordField(fieldKind, string(kind)).StoreValue())
	return m.writer.Update(doc.ID(), doc)
}

// Search returns the best matches for the words of query, best first.
func (m *MessageIndex) Search(ctx context.Context, query string) ([]Hit, error) {
	reader, err := m.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	request := bluge.NewTopNSearch(m.limit, bluge.NewMatchQuery(query).SetField(fieldText))
	matches, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var hits []Hit
	match, err := matches.Next()
	for err == nil && match != nil {
		hit := Hit{Score: match.Score}
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.ID = string(value)
			case fieldText:
				hit.Text = string(value)
			case fieldKind:
				hit.Kind = domain.MessageKind(value)
			case fieldSender:
				id, convErr := strconv.Atoi(string(value))
				if convErr == nil {
					hit.SenderID = domain.UserID(id)
				}
			}
			return true
		})
		if err != nil {
			break
		}
		hits = append(hits, hit)
		match, err = matches.Next()
	}
	if err != nil {
		return nil, err
	}
	m.log.Debug("Message search", "query", query, "hits", len(hits))
	return hits, nil
}

func (m *MessageIndex) Close() error {
	return m.writer.Close()
}
