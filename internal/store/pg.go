package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type pgStore struct {
	db    *gorm.DB
	locks *gorm.DB
}

// Option configures a PostgreSQL store
type Option func(*pgStore)

// WithLockPool holds workspace advisory locks on their own connections.
// A lock holder keeps its connection idle in a transaction while the guarded work
// runs on the main pool, so sharing one pool can exhaust it.
func WithLockPool(locks *gorm.DB) Option {
	return func(s *pgStore) {
		s.locks = locks
	}
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB, opts ...Option) Store {
	s := &pgStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	if s.locks == nil {
		s.locks = db
	}
	return s
}

// UseReadReplica registers a read replica for queries that tolerate replication lag
func UseReadReplica(db *gorm.DB, replica gorm.Dialector) error {
	return db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{replica},
		Policy:   dbresolver.RandomPolicy{},
	}))
}

// primary routes a query to the primary. Computation reads must never lag behind the
// watermark they advance, so they always go here.
func (s *pgStore) primary() *gorm.DB {
	if hasDBResolver(s.db) {
		return s.db.Clauses(dbresolver.Write)
	}
	return s.db
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// database/sql treats MaxIdleConns above MaxOpenConns as MaxOpenConns anyway
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize keeps bulk writes under PostgreSQL's 65535 bind parameter limit.
// A fixed headroom covers ON CONFLICT parameters and other per-statement overhead.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// inBatches splits n items into safe batches and calls fn with each [start, end) range
func inBatches(n int, fieldsPerRecord int, fn func(start, end int) error) error {
	if n == 0 {
		return nil
	}
	size := calculateSafeBatchSize(n, fieldsPerRecord)
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		if err := fn(start, end); err != nil {
			return err
		}
	}
	return nil
}
