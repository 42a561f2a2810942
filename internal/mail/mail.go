package mail

// Message is a plain-text email. Templated/HTML mail is out of scope.
type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// Sender delivers messages asynchronously; implementations must never block
// the request path on transport I/O.
type Sender interface {
	Send(msg Message)
}
