package usersink

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-insights/components/dashboard"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// DefaultCapacity bounds the Recorder when no capacity is given.
const DefaultCapacity = 200

// Recorder is an in-memory Sink that keeps the most recent records and serves
// them back as audit trail rows.
type Recorder struct {
	mu       sync.RWMutex
	capacity int
	records  []types.ActivityRecord
}

var (
	_ Sink                = (*Recorder)(nil)
	_ dashboard.AuditFeed = (*Recorder)(nil)
)

// NewRecorder builds a Recorder holding at most capacity records.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{capacity: capacity}
}

// Log appends record, evicting the oldest entry when full.
func (r *Recorder) Log(_ context.Context, record types.ActivityRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	if over := len(r.records) - r.capacity; over > 0 {
		r.records = append([]types.ActivityRecord(nil), r.records[over:]...)
	}
	return nil
}

// Records returns a copy of the stored records, oldest first.
func (r *Recorder) Records() []types.ActivityRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]types.ActivityRecord(nil), r.records...)
}

// Recent returns up to limit audit rows, newest first.
func (r *Recorder) Recent(_ context.Context, _ dashboard.ViewerContext, limit int) ([]dashboard.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.records) {
		limit = len(r.records)
	}
	entries := make([]dashboard.AuditEntry, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(entries) < limit; i-- {
		entries = append(entries, toEntry(i, r.records[i]))
	}
	return entries, nil
}

func toEntry(idx int, record types.ActivityRecord) dashboard.AuditEntry {
	user := labelOr(record.Data, "actor_label", "")
	if user == "" && record.ActorID != uuid.Nil {
		user = record.ActorID.String()
	}
	return dashboard.AuditEntry{
		ID:        fmt.Sprintf("activity-%d", idx+1),
		Timestamp: record.OccurredAt,
		User:      user,
		Action:    record.Verb,
		Extent:    record.ObjectType,
		Details:   labelOr(record.Data, "details", record.ObjectID),
	}
}

func labelOr(data map[string]any, key, fallback string) string {
	if v, ok := data[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
