package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-computed-properties/internal/adapter"
	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/messaging"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	// SubjectPrefix is the first token of every change subject
	SubjectPrefix string
	// DuplicateWindow is how long the stream remembers message ids
	DuplicateWindow time.Duration
}

type publisher struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	prefix string
	json   adapter.JSON
}

// NewPublisher connects to NATS and makes sure the change stream exists
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	duplicates := cfg.DuplicateWindow
	if duplicates == 0 {
		duplicates = 24 * time.Hour
	}
	err = js.EnsureStream(ctx, jetstream.StreamConfig{
		Name:       cfg.StreamName,
		Subjects:   []string{cfg.SubjectPrefix + ".>"},
		Duplicates: duplicates,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc:     nc,
		js:     js,
		prefix: cfg.SubjectPrefix,
		json:   jsonAdapter,
	}, nil
}

// PublishChange publishes a change notification to NATS JetStream
func (p *publisher) PublishChange(ctx context.Context, notification domain.ChangeNotification) error {
	data, err := p.json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal change notification: %w", err)
	}

	subject := p.buildSubject(notification)

	ack, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(notification.DedupKey))
	if err != nil {
		return fmt.Errorf("failed to publish change notification: %w", err)
	}

	if ack != nil && ack.Duplicate {
		logger.DebugCtx(ctx, "Change notification deduplicated by broker",
			zap.String("subject", subject),
			zap.String("dedupKey", notification.DedupKey),
		)
	}

	return nil
}

// buildSubject constructs the NATS subject of a notification
func (p *publisher) buildSubject(notification domain.ChangeNotification) string {
	// Format: {prefix}.{workspaceId}.{kind}
	// e.g., computed_properties.ws-1.segment_entered
	return fmt.Sprintf("%s.%s.%s", p.prefix, notification.WorkspaceID, notification.Kind)
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
