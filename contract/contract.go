//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"world-sync/domain"
	"world-sync/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker is a long running loop owned by the supervisor, which handles its panics and restarts.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName returns the worker's type name, used as its label in supervisor logs.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink receives every event once it has been applied by the session worker.
type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
}

type IRegistry interface {
	GetSinksForTopic(topic event.Topic) []EventSink
	Subscribe(subscriberID string, topic event.Topic, sink EventSink)
	Unsubscribe(subscriberID string, topic event.Topic)
}

// CommandSender is the outbound half of the session event bus.
type CommandSender interface {
	Send(cmd domain.Command)
}

// InventoryStore owns the furniture groups outside trading.
// Items whose ref is in ids become non-interactable, every other item is released.
type InventoryStore interface {
	SetLockedItemIDs(ids []domain.ItemID)
}

type Roster interface {
	Resolve(participantID domain.UserID) (domain.Friend, bool)
}

type Identity interface {
	CurrentUserID() domain.UserID
}

type RoomUsers interface {
	UserByID(id domain.UserID) (domain.RoomUser, bool)
	UserByIndex(roomIndex int) (domain.RoomUser, bool)
}

type Notifier interface {
	Alert(notification domain.Notification)
}

type SoundPlayer interface {
	Play(cue domain.SoundCue)
}

type TextFilter interface {
	Censor(text string) string
}
