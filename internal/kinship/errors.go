package kinship

import "errors"

// Fatal errors. They abort the current computation only and always carry the
// ids involved in their message.
var (
	ErrUnknownRelationshipType = errors.New("unknown relationship type")
	ErrCorruptExplorationGraph = errors.New("corrupt exploration graph")
	ErrInconsistentGeneration  = errors.New("inconsistent generation assignment")
	ErrDisconnectedSteps       = errors.New("steps are not connected to the root")
)

// Precondition errors.
var (
	ErrInvalidMaxDepth     = errors.New("max depth must be between 1 and 50")
	ErrPersonNotFound      = errors.New("person not found")
	ErrInvalidLayoutConfig = errors.New("invalid layout config")
)

// ErrNotConnected is the normal "no path within the depth bound" outcome.
var ErrNotConnected = errors.New("not connected")

// MissingPersonWarning records an edge whose target has no person attributes.
// The edge is skipped and traversal continues.
type MissingPersonWarning struct {
	FromPersonID string       `json:"from_person_id"`
	PersonID     string       `json:"person_id"`
	Type         RelationType `json:"type"`
}
