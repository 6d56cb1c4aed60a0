package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/avolkau/storefront/internal/config"
	"github.com/avolkau/storefront/internal/pkg/logger"
)

// Consumer is a plain (non-JetStream) subscription over order events,
// used by processes that only observe the stream, like the notifier.
type Consumer struct {
	nc     *nats.Conn
	logger *logger.Logger
	sub    *nats.Subscription
}

// NewConsumer connects to NATS
func NewConsumer(cfg *config.Config, log *logger.Logger) (*Consumer, error) {
	nc, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Infof("Connected to NATS at %s", cfg.NATS.URL)

	return &Consumer{
		nc:     nc,
		logger: log,
	}, nil
}

// Subscribe attaches a handler to a subject; handler errors are logged,
// not propagated, since a core subscription has no redelivery anyway.
func (c *Consumer) Subscribe(subject string, handler func(data []byte) error) error {
	sub, err := c.nc.Subscribe(subject, func(msg *nats.Msg) {
		if err := handler(msg.Data); err != nil {
			c.logger.Errorf(err, "Failed to handle event on %s", subject)
		}
	})

	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	c.sub = sub
	c.logger.Infof("Subscribed to %s", subject)
	return nil
}

// Close closes the NATS connection
func (c *Consumer) Close() {
	if c.sub != nil {
		if err := c.sub.Unsubscribe(); err != nil {
			c.logger.Warnf("Failed to unsubscribe: %v", err)
		}
	}
	if c.nc != nil {
		c.nc.Close()
		c.logger.Info("NATS consumer connection closed")
	}
}

// LoggingHandler logs every order event with its type and order fields
func LoggingHandler(log *logger.Logger) func(data []byte) error {
	return func(data []byte) error {
		var event struct {
			EventType string `json:"event_type"`
			OrderID   string `json:"order_id"`
			Number    string `json:"number"`
		}
		if err := json.Unmarshal(data, &event); err != nil {
			log.Error("Failed to unmarshal order event", err)
			return err
		}

		log.WithFields(map[string]interface{}{
			"event_type": event.EventType,
			"order_id":   event.OrderID,
			"number":     event.Number,
		}).Info("Order event received")
		return nil
	}
}
