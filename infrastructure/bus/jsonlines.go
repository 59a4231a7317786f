// Package bus carries the session event bus as JSON lines:
// one {"type": "...", "payload": {...}} envelope per line in both directions.
package bus

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"world-sync/contract"
	"world-sync/domain"
	"world-sync/domain/event"
	"world-sync/errors"
)

// maxLineSize bounds one inbound envelope, item lists can be long.
const maxLineSize = 1 << 20

var _ contract.CommandSender = (*CommandWriter)(nil)

// CommandWriter sends outbound commands as JSON lines. Safe for concurrent use.
type CommandWriter struct {
	mu  sync.Mutex
	out io.Writer
	log *slog.Logger
}

func NewCommandWriter(out io.Writer, log *slog.Logger) *CommandWriter {
	return &CommandWriter{out: out, log: log}
}

// Send is fire-and-forget, a write failure is only logged.
func (w *CommandWriter) Send(cmd domain.Command) {
	payload, err := json.Marshal(cmd)
	if err != nil {
		w.log.Error("Command not encoded", "command", cmd.Name(), "error", err)
		return
	}
	line, err := json.Marshal(event.Envelope{Type: cmd.Name(), Payload: payload})
	if err != nil {
		w.log.Error("Command not encoded", "command", cmd.Name(), "error", err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err = w.out.Write(append(line, '\n')); err != nil {
		w.log.Error("Command not sent", "command", cmd.Name(), "error", err)
	}
}

// DecodeLine parses one envelope line into its typed event.
func DecodeLine(line []byte) (event.Event, error) {
	var envelope event.Envelope
	if err := json.Unmarshal(line, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrInvalidPayload, err)
	}
	return event.Decode(envelope)
}

// LineHandler takes over lines that are not envelopes, it reports whether it did.
type LineHandler func(ctx context.Context, line string) bool

// Reader turns inbound lines into events.
type Reader struct {
	in       io.Reader
	log      *slog.Logger
	dispatch func(ctx context.Context, evt event.Event) error
	handler  LineHandler
}

func NewReader(in io.Reader, log *slog.Logger, dispatch func(ctx context.Context, evt event.Event) error, handler LineHandler) *Reader {
	return &Reader{in: in, log: log, dispatch: dispatch, handler: handler}
}

// Run returns nil at end of input. Undecodable lines are logged and skipped.
func (r *Reader) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if r.handler != nil && r.handler(ctx, string(line)) {
			continue
		}
		evt, err := DecodeLine(line)
		if err != nil {
			r.log.Warn("Inbound line dropped", "error", err)
			continue
		}
		if err = r.dispatch(ctx, evt); err != nil {
			return err
		}
	}
	return scanner.Err()
}
