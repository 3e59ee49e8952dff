// Package usersink bridges dashboard activity events into go-users activity
// records.
package usersink

import (
	"context"
	"errors"

	"github.com/goliatone/go-insights/pkg/activity"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// ErrMissingSink is returned when the hook has nowhere to write.
var ErrMissingSink = errors.New("usersink: sink not configured")

// Sink persists go-users activity records.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook maps activity events to go-users records and writes them to Sink.
type Hook struct {
	Sink Sink
}

var _ activity.Hook = Hook{}

// Notify converts evt and logs it. Events without a verb are ignored.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	evt = activity.NormalizeEvent(evt)
	if evt.Verb == "" {
		return nil
	}
	if h.Sink == nil {
		return ErrMissingSink
	}
	return h.Sink.Log(ctx, ToRecord(evt))
}

// ToRecord builds the go-users record for evt. Identifiers that are not UUIDs
// (e.g. "FR12") are mapped to stable name-based UUIDs and kept verbatim in
// the record data under "<field>_label".
func ToRecord(evt activity.Event) types.ActivityRecord {
	data := map[string]any{}
	for k, v := range evt.Metadata {
		data[k] = v
	}
	if evt.DefinitionCode != "" {
		data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		data["recipients"] = append([]string(nil), evt.Recipients...)
	}
	return types.ActivityRecord{
		ActorID:    identifier(evt.ActorID, "actor", data),
		UserID:     identifier(evt.UserID, "user", data),
		TenantID:   identifier(evt.TenantID, "tenant", data),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		OccurredAt: evt.OccurredAt,
		Data:       data,
	}
}

var labelNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://ebrscorp.com/insights/actors"))

func identifier(raw, field string, data map[string]any) uuid.UUID {
	if raw == "" {
		return uuid.Nil
	}
	if id, err := uuid.Parse(raw); err == nil {
		return id
	}
	data[field+"_label"] = raw
	return uuid.NewSHA1(labelNamespace, []byte(raw))
}
