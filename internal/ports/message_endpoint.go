package ports

// MessageEndpoint defines the interface for a transport that feeds inbound
// messages to the honeypot service.
type MessageEndpoint interface {
	// Start starts serving inbound messages
	Start() error

	// Stop stops the endpoint
	Stop() error
}
