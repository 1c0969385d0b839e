package usecase

import "context"

// OperationRecorder abstracts the outbox so use cases stay storage-agnostic.
// Record captures the backend call a future server integration would
// receive: HTTP method, resource path and JSON body.
type OperationRecorder interface {
	Record(ctx context.Context, method, path string, body interface{}) error
}
