package domain

// EventType defines the type of real-time event.
type EventType string

const (
	EventRollupUpdated EventType = "ROLLUP_UPDATED"
)

// Dataset names used for event routing and CSV export selection.
const (
	DatasetOverview  = "overview"
	DatasetEmployees = "employees"
	DatasetDaily     = "daily"
	DatasetHeatmap   = "heatmap"
)

// Event is the payload sent over WebSocket.
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
	Dataset string      `json:"dataset"` // Used for routing to dataset "rooms"
}
