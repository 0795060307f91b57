package materializer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-computed-properties/internal/adapter"
	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/store"
)

// Config holds the computation pass knobs
type Config struct {
	// PassConcurrency bounds the computed properties computed in parallel
	PassConcurrency int
	// SubWindow is the longest processing time span committed in one transaction; zero disables splitting
	SubWindow time.Duration
	// MaxPassDuration stops a pass after the last committed sub-window once exceeded; zero disables it
	MaxPassDuration time.Duration
	// EventBatchSize is the event store page size
	EventBatchSize int
	// RetryMaxElapsed bounds the retries of one store call
	RetryMaxElapsed time.Duration
}

// Result is the outcome of one computation pass
type Result struct {
	// Changes are the resolved value transitions committed by this pass
	Changes []domain.Change
	// Partial is set when a property stopped before reaching now
	Partial bool
	// Skipped are properties with unusable definitions
	Skipped []domain.ComputedPropertyKey
	// Failed are properties whose pass failed; they resume from their watermark next time
	Failed []domain.ComputedPropertyKey
}

// Materializer folds new events into computed property state
//
//go:generate mockgen -source=materializer.go -destination=../mocks/materializer.go -package=mocks -mock_names=Materializer=MockMaterializer
type Materializer interface {
	// ComputeState runs one pass over the window (watermark, now] of every given computed property
	// and returns the committed changes
	ComputeState(
		ctx context.Context,
		workspaceID string,
		segments []domain.Segment,
		userProperties []domain.UserProperty,
		now time.Time,
	) (*Result, error)
}

type materializer struct {
	config Config
	store  store.Store
	clock  adapter.Clock
}

// NewMaterializer creates a new materializer
func NewMaterializer(config Config, st store.Store, clock adapter.Clock) Materializer {
	if config.PassConcurrency <= 0 {
		config.PassConcurrency = 1
	}
	if config.EventBatchSize <= 0 {
		config.EventBatchSize = 5000
	}
	if config.RetryMaxElapsed <= 0 {
		config.RetryMaxElapsed = time.Minute
	}
	return &materializer{config: config, store: st, clock: clock}
}

// ComputeState runs one pass. Invalid definitions are skipped; a failing property does not stop
// the others and the joined error is returned together with the changes that were committed.
func (m *materializer) ComputeState(
	ctx context.Context,
	workspaceID string,
	segments []domain.Segment,
	userProperties []domain.UserProperty,
	now time.Time,
) (*Result, error) {
	now = now.UTC().Truncate(time.Microsecond)
	started := m.clock.Now()
	result := &Result{}

	var plans []*plan
	for _, s := range segments {
		def, err := s.ParseDefinition()
		if err != nil {
			logger.ErrorCtx(ctx, err, logger.Workspace(workspaceID), zap.String("segmentID", s.ID))
			result.Skipped = append(result.Skipped, s.Key())
			continue
		}
		plans = append(plans, compileSegment(s, def))
	}
	for _, up := range userProperties {
		def, err := up.ParseDefinition()
		if err != nil {
			logger.ErrorCtx(ctx, err, logger.Workspace(workspaceID), zap.String("userPropertyID", up.ID))
			result.Skipped = append(result.Skipped, up.Key())
			continue
		}
		plans = append(plans, compileUserProperty(up, def))
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	pool := pond.NewPool(m.config.PassConcurrency, pond.WithContext(ctx))
	for _, p := range plans {
		pool.Submit(func() {
			changes, partial, err := m.computeProperty(ctx, p, now, started)

			mu.Lock()
			defer mu.Unlock()
			result.Changes = append(result.Changes, changes...)
			if partial {
				result.Partial = true
			}
			if err != nil {
				result.Failed = append(result.Failed, p.key)
				errs = append(errs, fmt.Errorf("%s: %w", p.key, err))
			}
		})
	}
	pool.StopAndWait()

	slices.SortStableFunc(result.Changes, func(a, b domain.Change) int {
		if c := strings.Compare(string(a.ComputedPropertyType), string(b.ComputedPropertyType)); c != 0 {
			return c
		}
		if c := strings.Compare(a.ComputedPropertyID, b.ComputedPropertyID); c != 0 {
			return c
		}
		return strings.Compare(a.UserID, b.UserID)
	})

	logger.InfoCtx(ctx, "Computation pass finished",
		logger.Workspace(workspaceID),
		zap.Int("properties", len(plans)),
		zap.Int("changes", len(result.Changes)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failed)),
		zap.Bool("partial", result.Partial),
		zap.Duration("duration", m.clock.Since(started)),
	)

	if ctxErr := ctx.Err(); ctxErr != nil {
		errs = append(errs, ctxErr)
	}
	return result, errors.Join(errs...)
}

// computeProperty advances one computed property from its watermark to now, one sub-window at a time
func (m *materializer) computeProperty(ctx context.Context, p *plan, now, started time.Time) ([]domain.Change, bool, error) {
	var period *domain.Period
	if err := m.retry(ctx, func() (err error) {
		period, err = m.store.GetPeriod(ctx, p.key)
		return err
	}); err != nil {
		return nil, false, fmt.Errorf("failed to get period: %w", err)
	}

	var from time.Time
	reset := false
	if period != nil {
		if period.Version == p.version {
			from = period.WindowEnd
			if !now.After(from) {
				return nil, false, nil
			}
		} else {
			reset = true
		}
	}

	bounds, err := m.subWindows(ctx, p, from, now)
	if err != nil {
		return nil, false, err
	}

	var changes []domain.Change
	expected := period
	for i, to := range bounds {
		if i > 0 && m.config.MaxPassDuration > 0 && m.clock.Since(started) > m.config.MaxPassDuration {
			logger.WarnCtx(ctx, "Pass duration exceeded, stopping at committed sub-window",
				logger.Workspace(p.key.WorkspaceID),
				zap.String("computedProperty", p.key.String()),
				zap.Time("windowEnd", from),
			)
			return changes, true, nil
		}

		committed, next, err := m.computeWindow(ctx, p, expected, from, to, reset && i == 0)
		if err != nil {
			if errors.Is(err, domain.ErrWatermarkConflict) {
				// another pass owns this key right now
				logger.WarnCtx(ctx, "Watermark moved concurrently, skipping property",
					logger.Workspace(p.key.WorkspaceID),
					zap.String("computedProperty", p.key.String()),
				)
				return changes, false, nil
			}
			return changes, false, err
		}
		changes = append(changes, committed...)
		expected = next
		from = to
	}
	return changes, false, nil
}

var errStopStream = errors.New("stop stream")

// subWindows splits (from, now] into commits of at most SubWindow. A property without a
// watermark starts at its first event instead of the epoch.
func (m *materializer) subWindows(ctx context.Context, p *plan, from, now time.Time) ([]time.Time, error) {
	if m.config.SubWindow <= 0 {
		return []time.Time{now}, nil
	}

	base := from
	if base.IsZero() {
		if p.filter == nil {
			return []time.Time{now}, nil
		}
		var first *domain.UserEvent
		err := m.retry(ctx, func() error {
			err := m.store.StreamEvents(ctx, store.EventQuery{
				WorkspaceID: p.key.WorkspaceID,
				To:          now,
				Filter:      *p.filter,
			}, 1, func(events []domain.UserEvent) error {
				if len(events) > 0 {
					first = &events[0]
				}
				return errStopStream
			})
			if errors.Is(err, errStopStream) {
				return nil
			}
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to find first event: %w", err)
		}
		if first == nil {
			return []time.Time{now}, nil
		}
		base = first.ProcessedAt
	}

	var bounds []time.Time
	for b := base.Add(m.config.SubWindow); b.Before(now); b = b.Add(m.config.SubWindow) {
		bounds = append(bounds, b)
	}
	return append(bounds, now), nil
}

var nullValue = json.RawMessage("null")

type userStates map[string]map[string]domain.RawState

func (u userStates) put(st domain.RawState) {
	if u[st.UserID] == nil {
		u[st.UserID] = map[string]domain.RawState{}
	}
	u[st.UserID][st.StateID] = st
}

// computeWindow folds (from, to] and commits raw state, changed assignments and the new watermark
func (m *materializer) computeWindow(
	ctx context.Context,
	p *plan,
	expected *domain.Period,
	from, to time.Time,
	reset bool,
) ([]domain.Change, *domain.Period, error) {
	delta, err := m.foldWindow(ctx, p, from, to)
	if err != nil {
		return nil, nil, err
	}

	users := map[string]bool{}
	for userID := range delta {
		users[userID] = true
	}
	for _, userID := range p.manualUsers {
		users[userID] = true
	}

	stored := userStates{}
	loadedAll := false
	if p.windowed() && !reset {
		// rolling windows expire without new events, so every holder is re-resolved
		var all []domain.RawState
		if err := m.retry(ctx, func() (err error) {
			all, err = m.store.ListRawState(ctx, p.key, nil)
			return err
		}); err != nil {
			return nil, nil, fmt.Errorf("failed to list raw state: %w", err)
		}
		for _, st := range all {
			stored.put(st)
			users[st.UserID] = true
		}
		loadedAll = true
	}

	current := map[string]domain.Assignment{}
	if p.hasManual || reset {
		var all []domain.Assignment
		if err := m.retry(ctx, func() (err error) {
			all, err = m.store.ListAssignments(ctx, p.key, nil)
			return err
		}); err != nil {
			return nil, nil, fmt.Errorf("failed to list assignments: %w", err)
		}
		for _, a := range all {
			current[a.UserID] = a
			if reset || domain.IsTrue(a.Value) {
				users[a.UserID] = true
			}
		}
	}

	userIDs := make([]string, 0, len(users))
	for userID := range users {
		userIDs = append(userIDs, userID)
	}
	slices.Sort(userIDs)

	if len(userIDs) > 0 && !loadedAll && !reset {
		var states []domain.RawState
		if err := m.retry(ctx, func() (err error) {
			states, err = m.store.ListRawState(ctx, p.key, userIDs)
			return err
		}); err != nil {
			return nil, nil, fmt.Errorf("failed to list raw state: %w", err)
		}
		for _, st := range states {
			stored.put(st)
		}
	}
	if reset {
		stored = userStates{}
	}

	if len(userIDs) > 0 && !p.hasManual && !reset {
		var assignments []domain.Assignment
		if err := m.retry(ctx, func() (err error) {
			assignments, err = m.store.ListAssignments(ctx, p.key, userIDs)
			return err
		}); err != nil {
			return nil, nil, fmt.Errorf("failed to list assignments: %w", err)
		}
		for _, a := range assignments {
			current[a.UserID] = a
		}
	}

	input := store.CommitWindowInput{
		Key:          p.key,
		Version:      p.version,
		Expected:     expected,
		WindowEnd:    to,
		RecomputedAt: m.clock.Now().UTC().Truncate(time.Microsecond),
		ResetState:   reset,
	}

	for _, userID := range userIDs {
		states := stored[userID]
		if states == nil {
			states = map[string]domain.RawState{}
		}
		for _, l := range p.leaves {
			st, had := states[l.stateID]
			d, touched := delta[userID][l.stateID]
			if touched {
				st = merge(st, d)
			}
			before := len(st.EventTimes)
			prune(&st, l.window, to)
			if touched || (had && len(st.EventTimes) != before) {
				states[l.stateID] = st
				input.RawStates = append(input.RawStates, st)
			}
		}

		value := p.resolve(userID, states, to)
		prev, has := current[userID]
		if value == nil {
			// A new definition version that yields nothing clears the old value
			if !reset || !has {
				continue
			}
			value = nullValue
		}
		if has && domain.ValuesEqual(prev.Value, value) {
			continue
		}
		if !has && p.key.Type == domain.ComputedPropertyTypeSegment && !domain.IsTrue(value) {
			continue
		}
		input.Assignments = append(input.Assignments, store.AssignmentWrite{UserID: userID, Value: value})

		if p.nodeStates != nil {
			for stateID, v := range p.nodeStates(userID, states, to) {
				input.NodeStates = append(input.NodeStates, store.NodeStateWrite{UserID: userID, StateID: stateID, Value: v})
			}
		}
	}

	var committed []domain.Assignment
	if err := m.retry(ctx, func() (err error) {
		committed, err = m.store.CommitWindow(ctx, input)
		return err
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to commit window: %w", err)
	}

	changes := make([]domain.Change, 0, len(committed))
	for _, a := range committed {
		changes = append(changes, domain.ChangeFromAssignment(a))
	}

	next := &domain.Period{
		WorkspaceID:          p.key.WorkspaceID,
		ComputedPropertyType: p.key.Type,
		ComputedPropertyID:   p.key.ID,
		Version:              p.version,
		WindowEnd:            to,
		LastRecomputedAt:     input.RecomputedAt,
	}
	return changes, next, nil
}

// foldWindow streams the events of (from, to] into per user, per leaf deltas
func (m *materializer) foldWindow(ctx context.Context, p *plan, from, to time.Time) (userStates, error) {
	if p.filter == nil {
		return userStates{}, nil
	}

	var delta userStates
	err := m.retry(ctx, func() error {
		// a retried stream starts over
		delta = userStates{}
		return m.store.StreamEvents(ctx, store.EventQuery{
			WorkspaceID: p.key.WorkspaceID,
			From:        from,
			To:          to,
			Filter:      *p.filter,
		}, m.config.EventBatchSize, func(events []domain.UserEvent) error {
			for _, e := range events {
				if e.UserID == "" {
					continue
				}
				for _, l := range p.leaves {
					st := delta[e.UserID][l.stateID]
					st.UserID = e.UserID
					st.StateID = l.stateID
					if fold(&st, l, e) {
						delta.put(st)
					}
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fold events: %w", err)
	}
	return delta, nil
}

func isPermanent(err error) bool {
	return errors.Is(err, domain.ErrInvalidDefinition) ||
		errors.Is(err, domain.ErrWatermarkConflict) ||
		errors.Is(err, domain.ErrWatermarkRegression) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// retry runs a store call with exponential backoff; domain errors are not retried
func (m *materializer) retry(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = m.config.RetryMaxElapsed

	return backoff.Retry(func() error {
		err := op()
		if err != nil && isPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(b, ctx))
}
