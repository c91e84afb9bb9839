package live

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// channelName is the NOTIFY channel the migration triggers publish on.
const channelName = "trip_changes"

// reconnectDelay is how long the listener waits before re-acquiring a
// connection after a LISTEN failure.
const reconnectDelay = time.Second

// Listener holds a dedicated Postgres connection, LISTENs on the
// trip_changes channel, and republishes decoded notifications to a Broker.
type Listener struct {
	pool   *pgxpool.Pool
	broker *Broker
	log    *slog.Logger
}

// NewListener constructs a Listener publishing into broker.
func NewListener(pool *pgxpool.Pool, broker *Broker, log *slog.Logger) *Listener {
	return &Listener{pool: pool, broker: broker, log: log}
}

// Run blocks, forwarding notifications until ctx is canceled. Connection
// failures are logged and retried; notifications raised while disconnected
// are lost, which is acceptable because subscribers refetch full state on
// the next one.
func (l *Listener) Run(ctx context.Context) error {
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.log.Warn("change feed listener disconnected", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

// listen acquires a dedicated connection and forwards notifications until
// the connection or the context fails.
func (l *Listener) listen(ctx context.Context) error {
	poolConn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer poolConn.Release()

	conn := poolConn.Conn()
	if _, err := conn.Exec(ctx, "LISTEN "+channelName); err != nil {
		return err
	}
	l.log.Info("change feed listener connected", "channel", channelName)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var change Change
		if err := json.Unmarshal([]byte(notification.Payload), &change); err != nil {
			// A malformed payload is a bug in the triggers, not a reason
			// to tear down the feed.
			l.log.Error("malformed change notification", "payload", notification.Payload, "error", err)
			continue
		}

		l.broker.Publish(change)
	}
}

// IsShutdown reports whether err is the normal result of context
// cancellation during shutdown.
func IsShutdown(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
