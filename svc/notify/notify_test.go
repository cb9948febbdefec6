package notify_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/email"
	"github.com/dmitrymomot/authkit/svc/notify"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	return m.Called(ctx, params).Error(0)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []*notify.Event
	err    error
	panic  bool
}

func (r *recordingNotifier) Notify(_ context.Context, event *notify.Event) error {
	if r.panic {
		panic("boom")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestEmailNotifier(t *testing.T) {
	t.Parallel()

	t.Run("sends welcome mail on signup", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
			return p.SendTo == "new@example.com" &&
				p.Subject == "Welcome to Acme" &&
				p.Tag == "account.signup" &&
				strings.Contains(p.BodyHTML, "<strong>new@example.com</strong>")
		})).Return(nil).Once()

		n := notify.NewEmailNotifier(sender, "Acme")
		err := n.Notify(context.Background(), notify.NewEvent(notify.EventSignup, "new@example.com", "id-1"))
		require.NoError(t, err)
		sender.AssertExpectations(t)
	})

	t.Run("sends security alerts", func(t *testing.T) {
		t.Parallel()

		for _, tc := range []struct {
			event   notify.EventType
			subject string
		}{
			{notify.EventMFADisabled, "Acme: two-factor authentication was turned off"},
			{notify.EventRecoveryCodesRegenerated, "Acme: new recovery codes were generated"},
		} {
			sender := &mockSender{}
			sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
				return p.Subject == tc.subject &&
					p.Tag == tc.event.String() &&
					strings.Contains(p.BodyHTML, "Security notice")
			})).Return(nil).Once()

			n := notify.NewEmailNotifier(sender, "Acme")
			require.NoError(t, n.Notify(context.Background(), notify.NewEvent(tc.event, "a@example.com", "id-1")))
			sender.AssertExpectations(t)
		}
	})

	t.Run("escapes markup", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
			return !strings.Contains(p.BodyHTML, "<script>") && strings.Contains(p.BodyHTML, "&lt;script&gt;")
		})).Return(nil).Once()

		n := notify.NewEmailNotifier(sender, "<script>")
		require.NoError(t, n.Notify(context.Background(), notify.NewEvent(notify.EventSignup, "a@example.com", "")))
		sender.AssertExpectations(t)
	})

	t.Run("ignores unknown events", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		n := notify.NewEmailNotifier(sender, "Acme")
		err := n.Notify(context.Background(), notify.NewEvent(notify.EventMFAVerified, "a@example.com", ""))
		require.NoError(t, err)
		sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})

	t.Run("propagates sender errors", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		sender.On("SendEmail", mock.Anything, mock.Anything).Return(email.ErrFailedToSendEmail)

		n := notify.NewEmailNotifier(sender, "Acme")
		err := n.Notify(context.Background(), notify.NewEvent(notify.EventSignup, "a@example.com", ""))
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	})

	t.Run("nil event", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, notify.NewEmailNotifier(&mockSender{}, "Acme").Notify(context.Background(), nil), notify.ErrNilEvent)
	})
}

func TestLogNotifier(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n := notify.NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	err := n.Notify(context.Background(), notify.NewEvent(notify.EventSignup, "alice@example.com", "id-1"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "account.signup")
	assert.NotContains(t, out, "alice@example.com")
}

func TestMultiNotifier(t *testing.T) {
	t.Parallel()

	errA := errors.New("a failed")
	a := &recordingNotifier{err: errA}
	b := &recordingNotifier{}

	m := notify.NewMultiNotifier(a, nil, b)
	err := m.Notify(context.Background(), notify.NewEvent(notify.EventSignup, "x@example.com", ""))

	assert.ErrorIs(t, err, errA)
	assert.Equal(t, 1, a.count())
	assert.Equal(t, 1, b.count(), "a failing notifier must not stop the rest")
}

func TestDispatcher(t *testing.T) {
	t.Parallel()

	t.Run("delivers in background", func(t *testing.T) {
		t.Parallel()

		rec := &recordingNotifier{}
		d := notify.NewDispatcher(rec)

		ctx, cancel := context.WithCancel(context.Background())
		d.Dispatch(ctx, notify.NewEvent(notify.EventSignup, "a@example.com", ""))
		cancel()
		d.Wait()

		assert.Equal(t, 1, rec.count())
	})

	t.Run("logs failures", func(t *testing.T) {
		t.Parallel()

		var buf syncBuffer
		d := notify.NewDispatcher(&recordingNotifier{err: errors.New("smtp down")},
			notify.WithDispatchLogger(slog.New(slog.NewTextHandler(&buf, nil))),
			notify.WithDispatchTimeout(time.Second),
		)

		d.Dispatch(context.Background(), notify.NewEvent(notify.EventSignup, "a@example.com", ""))
		d.Wait()

		assert.Contains(t, buf.String(), "notification failed")
		assert.Contains(t, buf.String(), "smtp down")
	})

	t.Run("recovers panics", func(t *testing.T) {
		t.Parallel()

		var buf syncBuffer
		d := notify.NewDispatcher(&recordingNotifier{panic: true},
			notify.WithDispatchLogger(slog.New(slog.NewTextHandler(&buf, nil))))

		assert.NotPanics(t, func() {
			d.Dispatch(context.Background(), notify.NewEvent(notify.EventSignup, "a@example.com", ""))
			d.Wait()
		})
		assert.Contains(t, buf.String(), "notifier panicked")
	})

	t.Run("drops events after wait", func(t *testing.T) {
		t.Parallel()

		var buf syncBuffer
		rec := &recordingNotifier{}
		d := notify.NewDispatcher(rec, notify.WithDispatchLogger(slog.New(slog.NewTextHandler(&buf, nil))))

		d.Dispatch(context.Background(), notify.NewEvent(notify.EventSignup, "a@example.com", ""))
		d.Wait()
		d.Dispatch(context.Background(), notify.NewEvent(notify.EventMFADisabled, "a@example.com", ""))
		d.Wait()

		assert.Equal(t, 1, rec.count())
		assert.Contains(t, buf.String(), "event dropped")
	})

	t.Run("wait races with dispatch", func(t *testing.T) {
		t.Parallel()

		rec := &recordingNotifier{}
		d := notify.NewDispatcher(rec)

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d.Dispatch(context.Background(), notify.NewEvent(notify.EventSignup, "a@example.com", ""))
			}()
		}
		d.Wait()
		wg.Wait()

		assert.LessOrEqual(t, rec.count(), 20)
	})

	t.Run("nil dispatcher is a no-op", func(t *testing.T) {
		t.Parallel()

		var d *notify.Dispatcher
		assert.NotPanics(t, func() {
			d.Dispatch(context.Background(), notify.NewEvent(notify.EventSignup, "a@example.com", ""))
		})
	})
}
