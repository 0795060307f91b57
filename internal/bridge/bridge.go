package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-computed-properties/internal/adapter"
	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/lifecycle"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/registry"
)

// Config holds the configuration for the event bridge
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
	// Subject is the ingestion notice subject, consumed as <Subject>.<workspaceId>
	Subject string
}

// IngestedNotice is published by the ingestion pipeline after it appended events of a workspace
type IngestedNotice struct {
	WorkspaceID string    `json:"workspaceId"`
	EventCount  int       `json:"eventCount,omitempty"`
	IngestedAt  time.Time `json:"ingestedAt,omitempty"`
}

// Bridge defines the interface for the event bridge
type Bridge interface {
	// Run consumes ingestion notices until the context is canceled
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc        adapter.NatsConn
	js        adapter.JetStream
	lifecycle lifecycle.Manager
	blocklist registry.WorkspaceBlocklist
	json      adapter.JSON
	config    Config
}

// NewBridge connects to NATS and creates a new event bridge
func NewBridge(
	cfg Config,
	natsJS adapter.NatsJetStream,
	manager lifecycle.Manager,
	blocklist registry.WorkspaceBlocklist,
	jsonAdapter adapter.JSON,
) (Bridge, error) {
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

	if blocklist == nil {
		blocklist = registry.NewWorkspaceBlocklist()
	}
	if cfg.Subject == "" {
		cfg.Subject = "events.ingested"
	}

	return &bridge{
		nc:        nc,
		js:        js,
		lifecycle: manager,
		blocklist: blocklist,
		json:      jsonAdapter,
		config:    cfg,
	}, nil
}

// Run starts the event bridge
func (b *bridge) Run(ctx context.Context) error {
	logger.Info("Starting event bridge", zap.String("stream", b.config.StreamName), zap.String("consumer", b.config.ConsumerName))

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       b.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       b.config.AckWaitTimeout,
		MaxDeliver:    b.config.MaxDeliver,
		FilterSubject: b.config.Subject + ".*",
	}

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.Info("Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming messages")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down event bridge")
			return ctx.Err()
		case msg := <-msgChan:
			go b.handleMessage(ctx, msg)
		}
	}
}

// handleMessage signals the workspace's computation process early.
// Unparseable notices are terminated, failed signals are redelivered.
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	var deliveries uint64
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		deliveries = metadata.NumDelivered
	}

	workspaceID, err := b.parseNotice(msg)
	if err != nil {
		logger.Error(err, zap.String("subject", msg.Subject()))
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	if b.blocklist.IsBlocked(workspaceID) {
		logger.Debug("Dropping ingestion notice of blocked workspace", logger.Workspace(workspaceID))
		b.ack(msg)
		return
	}

	err = b.lifecycle.SignalEarly(ctx, workspaceID)
	switch {
	case err == nil:
		logger.Debug("Signalled early recompute",
			logger.Workspace(workspaceID),
			zap.Uint64("deliveryCount", deliveries),
		)
	case errors.Is(err, domain.ErrWorkflowNotFound):
		// Nothing running; the reconciler starts eligible workspaces and their first pass reads these events
		logger.Debug("No running process to signal", logger.Workspace(workspaceID))
	default:
		logger.Error(err, logger.Workspace(workspaceID), zap.Uint64("deliveryCount", deliveries))
		if err := msg.Nak(); err != nil {
			logger.Error(err, zap.String("message", "Failed to NAK message"))
		}
		return
	}

	b.ack(msg)
}

// parseNotice returns the workspace of a notice, from its payload or else its subject
func (b *bridge) parseNotice(msg adapter.Message) (string, error) {
	var notice IngestedNotice
	if err := b.json.Unmarshal(msg.Data(), &notice); err != nil {
		return "", fmt.Errorf("failed to unmarshal ingestion notice: %w", err)
	}
	if notice.WorkspaceID != "" {
		return notice.WorkspaceID, nil
	}

	prefix := b.config.Subject + "."
	if id, ok := strings.CutPrefix(msg.Subject(), prefix); ok && id != "" && !strings.Contains(id, ".") {
		return id, nil
	}
	return "", fmt.Errorf("ingestion notice without workspace id")
}

func (b *bridge) ack(msg adapter.Message) {
	if err := msg.Ack(); err != nil {
		logger.Error(err, zap.String("message", "Failed to ACK message"))
	}
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc == nil {
		return
	}

	b.nc.Close()
}
