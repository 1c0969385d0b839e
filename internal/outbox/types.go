package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Operation records one intended backend call: the method, resource path
// and JSON body a future server integration would receive.
type Operation struct {
	ID         string          `json:"id"`
	Method     string          `json:"method"`
	Path       string          `json:"path"`
	Body       json.RawMessage `json:"body,omitempty"`
	Retries    int             `json:"retries"`
	RecordedAt time.Time       `json:"recorded_at"`

	bucketKey []byte
}

func (o *Operation) normalize() {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.RecordedAt.IsZero() {
		o.RecordedAt = time.Now()
	}
}
