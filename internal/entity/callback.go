package entity

type CallbackEventType string

const (
	CallbackEventTypeReportReady CallbackEventType = "report.ready"
	CallbackEventTypeError       CallbackEventType = "interview.error"
)

type CallbackEvent struct {
	Event     CallbackEventType `json:"event"`
	Timestamp string            `json:"timestamp,omitempty"`
	Data      any               `json:"data,omitempty"`
}

type CallbackReportData struct {
	SessionID string          `json:"session_id"`
	Report    *FeedbackReport `json:"report"`
}

type CallbackErrorDetails struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type CallbackErrorData struct {
	Error CallbackErrorDetails `json:"error"`
}
