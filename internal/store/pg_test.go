package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/feral-file/ff-computed-properties/internal/store/pgtest"
)

var testDB *pgtest.Database

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	testDB, err = pgtest.Start(ctx)
	if err != nil {
		fmt.Printf("Failed to start test database: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	testDB.Close(ctx)
	os.Exit(code)
}

// initPGTestDB opens a rolled-back transaction per test and returns a store bound to it
func initPGTestDB(t *testing.T) (Store, *gorm.DB) {
	tx := testDB.Tx(t)
	return NewPGStore(tx), tx
}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	RunStoreTests(t, initPGTestDB)
}

// TestWorkspaceLocks_ResetWaitsForPass holds locks on real sessions, outside the per-test transaction
func TestWorkspaceLocks_ResetWaitsForPass(t *testing.T) {
	st := NewPGStore(testDB.Tx(t), WithLockPool(testDB.DB))
	ctx := context.Background()
	noop := func(context.Context) error { return nil }

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- st.WithComputeLock(ctx, "ws-lock", func(context.Context) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	require.NoError(t, st.WithComputeLock(ctx, "ws-lock", noop), "passes share the lock")
	require.NoError(t, st.WithResetLock(ctx, "ws-other", noop), "other workspaces are not blocked")

	waitCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	require.Error(t, st.WithResetLock(waitCtx, "ws-lock", noop), "reset waits for the running pass")

	close(release)
	require.NoError(t, <-done)
	require.NoError(t, st.WithResetLock(ctx, "ws-lock", noop))
}
