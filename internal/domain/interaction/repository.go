package interaction

import (
	"context"
	"time"
)

// Query narrows a history lookup to one recipient as seen by one caregiver account.
type Query struct {
	ViewerID    string
	RecipientID string
	Since       time.Time
}

// Repository loads interaction history from the datastore.
type Repository interface {
	// List returns the matching records and whether the viewer may see the recipient at all.
	List(ctx context.Context, q Query) ([]Record, bool, error)
}
