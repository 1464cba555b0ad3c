package constants

// RecordState mirrors the deleted_at tombstone so rows can be filtered
// without relying on a null check alone.
type RecordState string

const (
	StateActive  RecordState = "active"
	StateDeleted RecordState = "deleted"
)
