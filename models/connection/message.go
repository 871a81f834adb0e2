package connection

// NoPayload is used for messages that only carry a code or an error.
type NoPayload bool

// Every message on the wire, in both directions, has this shape. The code
// tells the receiver how to decode the payload.
type Message[T any] struct {
	Code    uint8    `json:"code"`
	Payload T        `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

func (m *Message[T]) AddPayload(payload T) {
	m.Payload = payload
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}

// Fail records err as the error details. A game rule violation ends up here
// and the session keeps going.
func (m *Message[T]) Fail(err error, message string) {
	m.AddError(err.Error(), message)
}

func (m Message[T]) Failed() bool {
	return m.Error != nil
}
