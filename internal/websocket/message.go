package websocket

// Message is the envelope for every feed push. Action identifies the kind
// of payload; the activity feed uses "event".
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}
