package dashboard

import (
	"context"
	"time"
)

// AuditTimestampLayout formats audit timestamps (08/16/25 12:30).
const AuditTimestampLayout = "01/02/06 15:04"

// AuditEntry is a single Audit Trail row.
type AuditEntry struct {
	ID        string
	Timestamp time.Time
	User      string
	Action    string
	Extent    string
	Details   string
}

// AuditFeed fetches recent audit entries for the current viewer.
type AuditFeed interface {
	Recent(ctx context.Context, viewer ViewerContext, limit int) ([]AuditEntry, error)
}

// StaticAuditFeed returns fixed entries useful for demos/tests.
type StaticAuditFeed struct {
	Items []AuditEntry
}

// Recent returns up to limit items from the static list.
func (f StaticAuditFeed) Recent(_ context.Context, _ ViewerContext, limit int) ([]AuditEntry, error) {
	if limit <= 0 || limit >= len(f.Items) {
		return append([]AuditEntry{}, f.Items...), nil
	}
	return append([]AuditEntry{}, f.Items[:limit]...), nil
}

// DefaultAuditFeed provides the sample rows shown on the Audit Trail page.
func DefaultAuditFeed() AuditFeed {
	base := time.Date(2025, time.August, 16, 12, 30, 0, 0, time.UTC)
	items := make([]AuditEntry, 7)
	for i := range items {
		items[i] = AuditEntry{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			User:      "FR12",
			Action:    "Remove Duplicates",
			Extent:    "Master FBF",
			Details:   MetricsPlaceholder,
		}
	}
	return StaticAuditFeed{Items: items}
}
