package emitter_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/emitter"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/mocks"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testEmitterMocks contains all the mocks needed for testing the emitter
type testEmitterMocks struct {
	ctrl      *gomock.Controller
	publisher *mocks.MockPublisher
	store     *mocks.MockStore
	clock     *mocks.MockClock
	emitter   emitter.Emitter
}

var emitTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// setupTestEmitter creates all the mocks and emitter for testing
func setupTestEmitter(t *testing.T) *testEmitterMocks {
	ctrl := gomock.NewController(t)

	tm := &testEmitterMocks{
		ctrl:      ctrl,
		publisher: mocks.NewMockPublisher(ctrl),
		store:     mocks.NewMockStore(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(emitTime).AnyTimes()

	tm.emitter = emitter.NewEmitter(
		tm.publisher,
		tm.store,
		emitter.Config{PendingLimit: 50},
		tm.clock,
	)

	return tm
}

// tearDownTestEmitter cleans up the test mocks
func tearDownTestEmitter(mocks *testEmitterMocks) {
	mocks.ctrl.Finish()
}

func enteredChange(userID string, version int64) domain.Change {
	return domain.Change{
		WorkspaceID:          "ws-1",
		UserID:               userID,
		ComputedPropertyType: domain.ComputedPropertyTypeSegment,
		ComputedPropertyID:   "seg-nyc",
		NewValue:             domain.BoolValue(true),
		Version:              version,
	}
}

func TestEmitter_Emit_PublishesThenMarks(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	ctx := context.Background()
	change := enteredChange("u1", 1)

	gomock.InOrder(
		mocks.store.EXPECT().IsProcessed(ctx, change).Return(false, nil),
		mocks.publisher.EXPECT().PublishChange(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, n domain.ChangeNotification) error {
				assert.NotEmpty(t, n.ID)
				assert.Equal(t, "ws-1:Segment:seg-nyc:u1:1", n.DedupKey)
				assert.Equal(t, domain.ChangeKindSegmentEntered, n.Kind)
				assert.Equal(t, emitTime, n.OccurredAt)
				return nil
			}),
		mocks.store.EXPECT().MarkProcessed(ctx, change).Return(nil),
	)

	result, err := mocks.emitter.Emit(ctx, "ws-1", []domain.Change{change})
	require.NoError(t, err)
	assert.Equal(t, emitter.Result{Published: 1}, result)
}

func TestEmitter_Emit_SkipsProcessed(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	ctx := context.Background()
	change := enteredChange("u1", 1)

	mocks.store.EXPECT().IsProcessed(ctx, change).Return(true, nil)

	result, err := mocks.emitter.Emit(ctx, "ws-1", []domain.Change{change})
	require.NoError(t, err)
	assert.Equal(t, emitter.Result{Skipped: 1}, result)
}

func TestEmitter_Emit_PublishFailureLeavesMarkerUnwritten(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	ctx := context.Background()
	failing := enteredChange("u1", 1)
	ok := enteredChange("u2", 1)

	mocks.store.EXPECT().IsProcessed(ctx, failing).Return(false, nil)
	mocks.publisher.EXPECT().PublishChange(ctx, gomock.Any()).Return(errors.New("nats: timeout"))

	mocks.store.EXPECT().IsProcessed(ctx, ok).Return(false, nil)
	mocks.publisher.EXPECT().PublishChange(ctx, gomock.Any()).Return(nil)
	mocks.store.EXPECT().MarkProcessed(ctx, ok).Return(nil)

	result, err := mocks.emitter.Emit(ctx, "ws-1", []domain.Change{failing, ok})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nats: timeout")
	assert.Equal(t, emitter.Result{Published: 1, Failed: 1}, result)
}

func TestEmitter_Emit_RetryAfterFailureEmitsOnce(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	ctx := context.Background()
	change := enteredChange("u1", 1)

	// First pass fails to mark, second pass publishes again and marks, third pass skips
	mocks.store.EXPECT().IsProcessed(ctx, change).Return(false, nil).Times(2)
	mocks.publisher.EXPECT().PublishChange(ctx, gomock.Any()).Return(nil).Times(2)
	gomock.InOrder(
		mocks.store.EXPECT().MarkProcessed(ctx, change).Return(errors.New("connection reset")),
		mocks.store.EXPECT().MarkProcessed(ctx, change).Return(nil),
	)
	mocks.store.EXPECT().IsProcessed(ctx, change).Return(true, nil)

	_, err := mocks.emitter.Emit(ctx, "ws-1", []domain.Change{change})
	require.Error(t, err)

	result, err := mocks.emitter.Emit(ctx, "ws-1", []domain.Change{change})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Published)

	result, err = mocks.emitter.Emit(ctx, "ws-1", []domain.Change{change})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
}

func TestEmitter_Emit_StopsOnCancelledContext(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mocks.emitter.Emit(ctx, "ws-1", []domain.Change{enteredChange("u1", 1)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmitter_EmitPending(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	ctx := context.Background()
	assignment := domain.Assignment{
		WorkspaceID:          "ws-1",
		UserID:               "u1",
		ComputedPropertyType: domain.ComputedPropertyTypeSegment,
		ComputedPropertyID:   "seg-nyc",
		Value:                domain.BoolValue(false),
		PreviousValue:        domain.BoolValue(true),
		Version:              2,
	}
	change := domain.ChangeFromAssignment(assignment)

	mocks.store.EXPECT().ListUnprocessedAssignments(ctx, "ws-1", 50).Return([]domain.Assignment{assignment}, nil)
	mocks.store.EXPECT().IsProcessed(ctx, change).Return(false, nil)
	mocks.publisher.EXPECT().PublishChange(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, n domain.ChangeNotification) error {
			assert.Equal(t, domain.ChangeKindSegmentExited, n.Kind)
			assert.Equal(t, int64(2), n.Version)
			return nil
		})
	mocks.store.EXPECT().MarkProcessed(ctx, change).Return(nil)

	result, err := mocks.emitter.EmitPending(ctx, "ws-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Published)
}

func TestEmitter_EmitPending_Nothing(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	ctx := context.Background()
	mocks.store.EXPECT().ListUnprocessedAssignments(ctx, "ws-1", 50).Return(nil, nil)

	result, err := mocks.emitter.EmitPending(ctx, "ws-1")
	require.NoError(t, err)
	assert.Equal(t, emitter.Result{}, result)
}
