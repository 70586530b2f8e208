package queue

import (
	"github.com/google/uuid"
)

// ImportJob is the payload for a catalog import unit of work. It is
// serialized as JSON on the wire; the worker loads the file behind
// FileRef from storage before running the import.
type ImportJob struct {
	UserID   uuid.UUID `json:"user_id"`
	FileRef  string    `json:"file_ref"`
	FileName string    `json:"file_name"`
}
