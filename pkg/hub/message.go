// Package hub fans out dashboard messages to websocket clients over
// channels, one goroutine per connection.
package hub

// Kind indicates the websocket message format.
type Kind int

const (
	// KindJSON is a JSON-encoded state message.
	KindJSON Kind = iota
	// KindBinary is raw binary data, e.g. encoded preview frames.
	KindBinary
)

// Message is one payload to broadcast to connected clients.
type Message struct {
	Kind Kind
	Data []byte
}

// JSON wraps pre-encoded JSON bytes.
func JSON(data []byte) Message { return Message{Kind: KindJSON, Data: data} }

// Binary wraps raw bytes.
func Binary(data []byte) Message { return Message{Kind: KindBinary, Data: data} }
