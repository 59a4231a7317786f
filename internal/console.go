package internal

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"world-sync/domain/event"
	"world-sync/infrastructure/console"
)

const helpText = `/search <words>   search inbound messages
/journal [cursor] list applied events, newest first
/timeline         list recent activity
/health           last process and channel samples
/stats            applied events by type
/state            print trade, threads and friend requests
/help             this help
any other line is a {"type": ..., "payload": ...} event or intent`

// Commands answers the slash commands typed on the console.
type Commands struct {
	mu      sync.Mutex
	session *Session
	out     io.Writer
}

func NewCommands(session *Session, out io.Writer) *Commands {
	return &Commands{session: session, out: out}
}

// Handle reports false for lines that are not slash commands.
func (c *Commands) Handle(ctx context.Context, line string) bool {
	if !strings.HasPrefix(line, "/") {
		return false
	}
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	arg = strings.TrimSpace(arg)

	c.mu.Lock()
	defer c.mu.Unlock()
	switch name {
	case "search":
		c.search(ctx, arg)
	case "journal":
		c.journal(arg)
	case "timeline":
		console.Timeline(c.out, c.session.Timeline.Activities())
	case "health":
		sample, ok := c.session.Health.Last()
		if !ok {
			_, _ = fmt.Fprintln(c.out, "no health sample yet")
		} else {
			console.Health(c.out, sample)
		}
		console.Channels(c.out, c.session.Capacity.Last())
	case "stats":
		console.Counts(c.out, c.session.Counter.Snapshot())
	case "state":
		c.state()
	case "help":
		_, _ = fmt.Fprintln(c.out, helpText)
	default:
		_, _ = fmt.Fprintf(c.out, "unknown command %q, try /help\n", name)
	}
	return true
}

func (c *Commands) search(ctx context.Context, query string) {
	if query == "" {
		_, _ = fmt.Fprintln(c.out, "usage: /search <words>")
		return
	}
	hits, err := c.session.Index.Search(ctx, query)
	if err != nil {
		c.session.Log.Error("Search failed", "query", query, "error", err)
		return
	}
	console.Hits(c.out, hits)
}

func (c *Commands) journal(cursor string) {
	var from *string
	if cursor != "" {
		from = &cursor
	}
	entries, next, err := c.session.Journal.Entries(from)
	if err != nil {
		c.session.Log.Error("Journal listing failed", "error", err)
		return
	}
	console.Journal(c.out, entries)
	if next != nil && *next != "" {
		_, _ = fmt.Fprintf(c.out, "next page: /journal %s\n", *next)
	}
}

func (c *Commands) state() {
	console.Trade(c.out, c.session.Trade.Snapshot())
	console.Inventory(c.out, c.session.Inventory.Groups())
	active, _ := c.session.Messenger.ActiveThread()
	console.Threads(c.out, c.session.Messenger.VisibleThreads(), active.ID)
	console.Requests(c.out, c.session.Friends.Visible())
}

// StateView redraws the part of the state an applied event touched.
type StateView struct {
	mu      sync.Mutex
	session *Session
	out     io.Writer
}

func NewStateView(session *Session, out io.Writer) *StateView {
	return &StateView{session: session, out: out}
}

func (v *StateView) Consume(_ context.Context, e event.Event) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch e.Topic() {
	case event.TopicTrade:
		console.Trade(v.out, v.session.Trade.Snapshot())
	case event.TopicMessenger:
		active, _ := v.session.Messenger.ActiveThread()
		console.Threads(v.out, v.session.Messenger.VisibleThreads(), active.ID)
	case event.TopicFriends, event.TopicRoom:
		console.Requests(v.out, v.session.Friends.Visible())
	case event.TopicInventory:
		console.Inventory(v.out, v.session.Inventory.Groups())
	}
	return nil
}

// Subscribe follows every topic through the orchestrator registry.
func (v *StateView) Subscribe(subscriberID string) {
	for _, topic := range []event.Topic{
		event.TopicTrade, event.TopicMessenger, event.TopicFriends, event.TopicRoom, event.TopicInventory,
	} {
		v.session.Orchestrator.RegisterSubscriber(subscriberID, topic, v)
	}
}
