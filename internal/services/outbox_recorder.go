package services

import (
	"context"
	"encoding/json"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/internal/outbox"
	"github.com/todoflow/backend/usecase"
)

// OutboxRecorder persists intended backend calls through the processor.
type OutboxRecorder struct {
	processor *OutboxProcessor
}

func NewOutboxRecorder(processor *OutboxProcessor) *OutboxRecorder {
	return &OutboxRecorder{processor: processor}
}

func (r *OutboxRecorder) Record(ctx context.Context, method, path string, body interface{}) error {
	if r.processor == nil || method == "" || path == "" {
		return domain.ErrInvalidPayload
	}

	var payload json.RawMessage
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = data
	}

	return r.processor.Enqueue(ctx, outbox.Operation{
		Method: method,
		Path:   path,
		Body:   payload,
	})
}

var _ usecase.OperationRecorder = (*OutboxRecorder)(nil)
