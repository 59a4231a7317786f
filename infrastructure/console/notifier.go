// Package console is the terminal front of a session: alerts, sound cues and state tables.
package console

import (
	"fmt"
	"io"
	"sync"

	"world-sync/domain"

	"github.com/gookit/color"
)

var kindStyles = map[domain.NotificationKind]color.Style{
	domain.NotificationDefault: color.New(color.BgBlack, color.FgGreen),
	domain.NotificationWarning: color.New(color.FgYellow, color.OpBold),
	domain.NotificationError:   color.New(color.FgRed, color.OpBold),
}

// Notifier prints alerts on one line each.
type Notifier struct {
	mu      sync.Mutex
	out     io.Writer
	colours bool
}

func NewNotifier(out io.Writer, colours bool) *Notifier {
	return &Notifier{out: out, colours: colours}
}

func (n *Notifier) Alert(notification domain.Notification) {
	kind := notification.Kind
	if kind == "" {
		kind = domain.NotificationDefault
	}
	line := fmt.Sprintf("[%s] %s: %s", kind, notification.Title, notification.Message)
	if n.colours {
		line = kindStyles[kind].Render(line)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintln(n.out, line)
}

// Speaker stands in for the audio layer, cues become a terminal bell and a tag.
type Speaker struct {
	mu   sync.Mutex
	out  io.Writer
	bell bool
}

func NewSpeaker(out io.Writer, bell bool) *Speaker {
	return &Speaker{out: out, bell: bell}
}

func (s *Speaker) Play(cue domain.SoundCue) {
	prefix := ""
	if s.bell {
		prefix = "\a"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.out, "%s(sound: %s)\n", prefix, cue)
}
