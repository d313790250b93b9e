package controller

// Intent is a notification delivered by a host container.
type Intent struct {
	Action string `json:"action"`
	Data   string `json:"data,omitempty"`
}

const (
	// ActionRefresh triggers an immediate fetch.
	ActionRefresh = "refresh"
	// ActionSetHint shows Data as the status hint.
	ActionSetHint = "hint"
)
