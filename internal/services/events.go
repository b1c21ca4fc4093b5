package services

import (
	"encoding/json"
	"log"
)

// EventPublisher publishes domain events for interested consumers. A nil
// publisher is valid and disables publication.
type EventPublisher interface {
	Publish(event string, body []byte) error
}

// publishEvent marshals payload and publishes it under the given event name.
// Publication is best effort: failures are logged and never fail the request
// that triggered them.
func publishEvent(publisher EventPublisher, event string, payload map[string]interface{}) {
	if publisher == nil {
		log.Printf("Event publisher is not initialized. Skipping %s event.", event)
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := publisher.Publish(event, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
