package chat

// Message is one chat record. Timestamp is assigned by the server at append
// time, in Unix milliseconds, so replayed history and live messages order
// identically.
type Message struct {
	SenderName string `json:"senderName"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
}
