package computation_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-computed-properties/internal/computation"
	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/emitter"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/materializer"
	"github.com/feral-file/ff-computed-properties/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type runnerTestMocks struct {
	ctrl         *gomock.Controller
	store        *mocks.MockStore
	materializer *mocks.MockMaterializer
	emitter      *mocks.MockEmitter
	runner       computation.Runner
}

func setupRunner(t *testing.T) *runnerTestMocks {
	ctrl := gomock.NewController(t)
	m := &runnerTestMocks{
		ctrl:         ctrl,
		store:        mocks.NewMockStore(ctrl),
		materializer: mocks.NewMockMaterializer(ctrl),
		emitter:      mocks.NewMockEmitter(ctrl),
	}
	m.runner = computation.NewRunner(m.store, m.materializer, m.emitter)
	return m
}

var (
	passTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	segments = []domain.Segment{{ID: "seg-nyc", WorkspaceID: "ws-1"}}
	changes  = []domain.Change{{
		WorkspaceID:          "ws-1",
		UserID:               "u1",
		ComputedPropertyType: domain.ComputedPropertyTypeSegment,
		ComputedPropertyID:   "seg-nyc",
		NewValue:             domain.BoolValue(true),
		Version:              1,
	}}
)

func TestRunner_Run(t *testing.T) {
	m := setupRunner(t)
	ctx := context.Background()

	gomock.InOrder(
		m.emitter.EXPECT().EmitPending(ctx, "ws-1").Return(emitter.Result{Published: 2}, nil),
		m.store.EXPECT().GetSegmentsAndUserProperties(ctx, "ws-1").Return(segments, nil, nil),
		m.materializer.EXPECT().ComputeState(ctx, "ws-1", segments, gomock.Nil(), passTime).
			Return(&materializer.Result{Changes: changes}, nil),
		m.emitter.EXPECT().Emit(ctx, "ws-1", changes).Return(emitter.Result{Published: 1}, nil),
	)

	result, err := m.runner.Run(ctx, "ws-1", passTime)
	require.NoError(t, err)
	assert.Equal(t, &computation.PassResult{Changes: 1, Emitted: 3}, result)
}

func TestRunner_Run_PendingFailureDoesNotBlockPass(t *testing.T) {
	m := setupRunner(t)
	ctx := context.Background()

	m.emitter.EXPECT().EmitPending(ctx, "ws-1").Return(emitter.Result{}, errors.New("nats down"))
	m.store.EXPECT().GetSegmentsAndUserProperties(ctx, "ws-1").Return(segments, nil, nil)
	m.materializer.EXPECT().ComputeState(ctx, "ws-1", segments, gomock.Nil(), passTime).
		Return(&materializer.Result{}, nil)
	m.emitter.EXPECT().Emit(ctx, "ws-1", gomock.Len(0)).Return(emitter.Result{}, nil)

	_, err := m.runner.Run(ctx, "ws-1", passTime)
	require.NoError(t, err)
}

func TestRunner_Run_DefinitionsError(t *testing.T) {
	m := setupRunner(t)
	ctx := context.Background()

	m.emitter.EXPECT().EmitPending(ctx, "ws-1").Return(emitter.Result{}, nil)
	m.store.EXPECT().GetSegmentsAndUserProperties(ctx, "ws-1").Return(nil, nil, errors.New("connection refused"))

	_, err := m.runner.Run(ctx, "ws-1", passTime)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load definitions")
}

func TestRunner_Run_EmitsCommittedChangesOnPartialFailure(t *testing.T) {
	m := setupRunner(t)
	ctx := context.Background()

	computeErr := errors.New("property up-email: deadlock detected")
	m.emitter.EXPECT().EmitPending(ctx, "ws-1").Return(emitter.Result{}, nil)
	m.store.EXPECT().GetSegmentsAndUserProperties(ctx, "ws-1").Return(segments, nil, nil)
	m.materializer.EXPECT().ComputeState(ctx, "ws-1", segments, gomock.Nil(), passTime).
		Return(&materializer.Result{
			Changes: changes,
			Failed:  []domain.ComputedPropertyKey{{WorkspaceID: "ws-1", Type: domain.ComputedPropertyTypeUserProperty, ID: "up-email"}},
		}, computeErr)
	m.emitter.EXPECT().Emit(ctx, "ws-1", changes).Return(emitter.Result{Published: 1}, nil)

	result, err := m.runner.Run(ctx, "ws-1", passTime)
	require.Error(t, err)
	assert.ErrorIs(t, err, computeErr)
	assert.Equal(t, 1, result.Emitted)
	assert.Equal(t, 1, result.Failed)
}
