package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/todoflow/backend/internal/outbox"
)

// DeliverySink receives drained operations. The default sink only logs the
// intended call; a real backend integration replaces it with one that
// performs the HTTP request.
type DeliverySink interface {
	Deliver(ctx context.Context, op outbox.Operation) error
}

// LogSink logs each operation and reports success.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Deliver(ctx context.Context, op outbox.Operation) error {
	s.logger.Info("outbox operation",
		zap.String("method", op.Method),
		zap.String("path", op.Path),
		zap.ByteString("body", op.Body),
	)
	return nil
}

// ProcessorConfig controls how frequently the outbox is drained.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	Retention  time.Duration
}

// OutboxProcessor drains recorded operations into the delivery sink.
type OutboxProcessor struct {
	queue  *outbox.Queue
	sink   DeliverySink
	logger *zap.Logger
	cron   *cron.Cron
	cfg    ProcessorConfig
}

func NewOutboxProcessor(queue *outbox.Queue, sink DeliverySink, logger *zap.Logger, cfg ProcessorConfig) *OutboxProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if sink == nil {
		sink = NewLogSink(logger)
	}

	p := &OutboxProcessor{
		queue:  queue,
		sink:   sink,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = p.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := p.Drain(ctx); err != nil {
			p.logger.Error("outbox drain failed", zap.Error(err))
		}
	})

	return p
}

// Start begins the periodic drain.
func (p *OutboxProcessor) Start() {
	p.cron.Start()
}

// Stop halts the schedule and waits for any running drain, bounded by ctx.
func (p *OutboxProcessor) Stop(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	stopped := p.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
	p.logger.Info("outbox processor stopped")
}

// Enqueue persists a recorded operation.
func (p *OutboxProcessor) Enqueue(ctx context.Context, op outbox.Operation) error {
	if p == nil || p.queue == nil {
		return fmt.Errorf("outbox processor not configured")
	}
	return p.queue.Enqueue(op)
}

// Drain delivers queued operations synchronously.
func (p *OutboxProcessor) Drain(ctx context.Context) error {
	if p == nil || p.queue == nil {
		return nil
	}

	ops, err := p.queue.GetBatch(p.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, op := range ops {
		if err := p.sink.Deliver(ctx, op); err != nil {
			p.logger.Error("failed to deliver outbox operation",
				zap.String("operation_id", op.ID),
				zap.String("path", op.Path),
				zap.Error(err))

			op.Retries++
			if op.Retries >= p.cfg.MaxRetries {
				p.logger.Warn("dropping outbox operation (max retries reached)", zap.String("operation_id", op.ID))
				_ = p.queue.Remove(op)
				continue
			}

			if err := p.queue.Remove(op); err != nil {
				p.logger.Warn("failed to remove outbox operation", zap.Error(err))
			}
			if err := p.queue.Requeue(op); err != nil {
				p.logger.Error("failed to requeue outbox operation", zap.Error(err))
			}
			continue
		}

		if err := p.queue.Remove(op); err != nil {
			p.logger.Warn("failed to purge delivered outbox operation", zap.Error(err))
		}
	}

	if p.cfg.Retention > 0 {
		if err := p.queue.Cleanup(time.Now().Add(-p.cfg.Retention)); err != nil {
			p.logger.Warn("outbox retention cleanup failed", zap.Error(err))
		}
	}
	return nil
}

// Size returns the number of queued operations.
func (p *OutboxProcessor) Size() int {
	if p == nil || p.queue == nil {
		return 0
	}
	size, err := p.queue.Size()
	if err != nil {
		return 0
	}
	return size
}
