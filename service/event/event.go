package event

import "time"

// Names of the event types emitted by the engine.
const (
	TypeCheckIn       = "CheckIn"
	TypeAdmitted      = "Admitted"
	TypeDischarged    = "Discharged"
	TypeBedStatus     = "BedStatus"
	TypeWardRequested = "WardRequested"
	TypeWardAllocated = "WardAllocated"
	TypeWardReleased  = "WardReleased"
)

// Context carries the identifying facts of a state transition alongside the
// typed payload.
type Context struct {
	PatientID int64  `json:"patientID,omitempty"`
	EventType string `json:"eventType"`
	Service   string `json:"service"`
}

// Event is a single engine notification with a typed payload.
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event for the supplied context and payload.
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Data:      data,
	}
}
