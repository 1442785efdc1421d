package response

// ApiResponse is the envelope every gateway endpoint returns.
// It matches the shape the upstream movie ticket API uses, so a
// browser talking to either side sees the same contract.
type ApiResponse struct {
	Success   bool        `json:"success"`          // true for 2xx outcomes
	Message   string      `json:"message"`          // Human-readable message
	Data      interface{} `json:"data,omitempty"`   // Payload for success
	Errors    interface{} `json:"errors,omitempty"` // Per-field validation details
	Timestamp int64       `json:"timestamp"`        // Unix millis
}
