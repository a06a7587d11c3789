package clockify

import "time"

type taskPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type timeIntervalPayload struct {
	Start time.Time `json:"start"`
	// End is null while a timer is running.
	End *time.Time `json:"end"`
}

type timeEntryPayload struct {
	ID           string              `json:"id"`
	Description  string              `json:"description"`
	Billable     bool                `json:"billable"`
	TaskID       *string             `json:"taskId"`
	ProjectID    *string             `json:"projectId"`
	TimeInterval timeIntervalPayload `json:"timeInterval"`
}

type errorPayload struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
