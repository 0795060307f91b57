package messaging

import (
	"context"

	"github.com/feral-file/ff-computed-properties/internal/domain"
)

// Publisher defines the interface for publishing change notifications to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishChange publishes a computed property change.
	// Redelivery of the same notification is deduplicated by its DedupKey.
	PublishChange(ctx context.Context, notification domain.ChangeNotification) error
	// Close closes the connection
	Close()
}
