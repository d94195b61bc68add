package publisher

// Publisher sends crawled listings to downstream consumers
type Publisher interface {
	// Publish sends one serialized listing
	Publish(message []byte) error

	// Trim caps the backing stream at its configured maximum length
	Trim() error

	// Close closes the underlying connection
	Close() error
}
