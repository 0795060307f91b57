package sweeper

import (
	"context"
)

// Sweeper is a long-running background loop of a sweeper binary
//
//go:generate mockgen -source=sweeper.go -destination=../mocks/sweeper.go -package=mocks -mock_names=Sweeper=MockSweeper
type Sweeper interface {
	// Start runs sweep cycles and blocks until the context is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop ends the loop after the current cycle, bounded by ctx
	Stop(ctx context.Context) error

	// Name identifies the sweeper in logs
	Name() string
}
