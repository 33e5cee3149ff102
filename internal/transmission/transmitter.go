package transmission

// Transmitter defines the interface for pushing the current entity states to
// a downstream integration.
type Transmitter interface {
	Transmit() error
	IsConnected() bool
}
