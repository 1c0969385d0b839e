package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/todoflow/backend/internal/outbox"
	"github.com/todoflow/backend/internal/store"
)

type Monitor struct {
	state  store.Store
	queue  *outbox.Queue
	pg     *pgxpool.Pool
	redis  *redislib.Client

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

// New builds a Monitor over the active state store, the outbox queue and the
// optional external connections. Pass the store the app actually reads so the
// report reflects the live backend, not just the local file.
func New(state store.Store, queue *outbox.Queue, pg *pgxpool.Pool, redis *redislib.Client, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		state:    state,
		queue:    queue,
		pg:       pg,
		redis:    redis,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	stateOK, stateKeys := m.checkState()
	outboxOK, outboxSize := m.checkOutbox()
	status := Status{
		State:      stateOK,
		StateKeys:  stateKeys,
		Outbox:     outboxOK,
		OutboxSize: outboxSize,
		PostgreSQL: m.checkPostgres(),
		Redis:      m.checkRedis(),
		LastCheck:  time.Now(),
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

func (m *Monitor) checkState() (bool, int) {
	if m.state == nil {
		return false, 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	keys, err := m.state.Len(ctx)
	if err != nil {
		m.logger.Warn("state store check failed", zap.Error(err))
		return false, keys
	}
	return true, keys
}

func (m *Monitor) checkOutbox() (bool, int) {
	if m.queue == nil {
		return false, 0
	}
	size, err := m.queue.Size()
	if err != nil {
		m.logger.Warn("outbox size check failed", zap.Error(err))
		return false, size
	}
	return true, size
}

func (m *Monitor) checkPostgres() *bool {
	if m.pg == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	ok := m.pg.Ping(ctx) == nil
	return &ok
}

func (m *Monitor) checkRedis() *bool {
	if m.redis == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ok := m.redis.Ping(ctx).Err() == nil
	return &ok
}
