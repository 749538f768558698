// Package store defines the persistence gateway the domain services
// mirror their in-memory state into. In-memory state is the source of
// truth; the gateway is a best-effort write-behind copy.
package store

import "context"

// Fixed keys the services persist their collections under.
const (
	KeyActivities      = "daily_schedule_activities"
	KeyDeletedDefaults = "daily_schedule_deleted_defaults"
	KeySchedules       = "daily_schedule_schedules"
	KeyAppVersion      = "app_version"
	KeyUserID          = "user_id"
)

// AllKeys lists every key a full data wipe must remove.
var AllKeys = []string{
	KeyActivities,
	KeyDeletedDefaults,
	KeySchedules,
	KeyAppVersion,
	KeyUserID,
}

// Gateway is a string-keyed blob store.
type Gateway interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// RemoveMany deletes the given keys. Missing keys are not an error.
	RemoveMany(ctx context.Context, keys []string) error
}
