package event

// Message is one presentation-layer notification: which channel it belongs
// to, what happened, and a loose payload.
type Message struct {
	Channel string                 `json:"channel"`
	Event   string                 `json:"event"`
	Data    map[string]interface{} `json:"data"`
}

// Publisher delivers messages to whatever transport the presentation layer
// listens on.
type Publisher interface {
	TriggerEvent(m Message) error
}
