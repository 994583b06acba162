package game

// Publisher delivers narrative text to entities. Only entities with an
// active session (players) have a live subscription; publishes to anything
// else are dropped by the transport.
type Publisher interface {
	PublishToEntity(id string, data []byte) error
}
