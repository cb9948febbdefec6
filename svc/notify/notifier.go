package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/sanitizer"
)

var ErrNilEvent = errors.New("notify: nil event")

// Notifier delivers one event to one backend.
type Notifier interface {
	Notify(ctx context.Context, event *Event) error
}

// MultiNotifier sends every event to all wrapped notifiers and joins their errors.
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier drops nil entries.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	filtered := make([]Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			filtered = append(filtered, n)
		}
	}
	return &MultiNotifier{notifiers: filtered}
}

func (m *MultiNotifier) Notify(ctx context.Context, event *Event) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes events to a structured logger. Identities are masked.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(l *slog.Logger) *LogNotifier {
	if l == nil {
		l = slog.Default()
	}
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) Notify(ctx context.Context, event *Event) error {
	if event == nil {
		return ErrNilEvent
	}
	n.logger.InfoContext(ctx, "account event",
		logger.Component("notify"),
		logger.Event(event.Type.String()),
		logger.Identity(sanitizer.MaskEmail(event.Identity)),
		logger.AccountID(event.AccountID),
	)
	return nil
}
