package services

import (
	"encoding/json"
	"fmt"

	"katalog/internal/models"

	"github.com/rs/zerolog/log"
)

// LogProductEvent decodes a product event received from the broker and records it in the log.
func LogProductEvent(body []byte) error {
	var event models.ProductEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode product event: %w", err)
	}
	if event.Type == "" || event.ProductID == 0 {
		return fmt.Errorf("incomplete product event %q", event.EventID)
	}

	log.Info().
		Str("event_id", event.EventID).
		Str("type", event.Type).
		Uint("product_id", event.ProductID).
		Time("occurred_at", event.OccurredAt).
		Msg("received product event")
	return nil
}
