package ports

import (
	"context"

	"spacetime/domain/events"
)

// EventReader loads a point-event set from an external data source.
type EventReader interface {
	ReadEvents(ctx context.Context) (*events.EventSet, error)
}
