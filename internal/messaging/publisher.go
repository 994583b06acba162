package messaging

import "strings"

// subjectReplacer strips characters that carry meaning in NATS subjects.
// Entity ids use "/" and "#" which are plain characters to NATS, but "."
// and whitespace are not.
var subjectReplacer = strings.NewReplacer(".", "_", " ", "_", "\t", "_")

// EntitySubject is the NATS subject carrying text addressed to one entity.
func EntitySubject(entityId string) string {
	return "entity." + subjectReplacer.Replace(entityId)
}

// EntityPublisher routes world output onto per-entity NATS subjects. It
// satisfies the world's publisher dependency.
type EntityPublisher struct {
	server *NatsServer
}

func NewEntityPublisher(server *NatsServer) *EntityPublisher {
	return &EntityPublisher{server: server}
}

func (p *EntityPublisher) PublishToEntity(entityId string, data []byte) error {
	return p.server.Publish(EntitySubject(entityId), data)
}
