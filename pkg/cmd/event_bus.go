package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dukex/rocklms/pkg/channels/gochannel"
	"github.com/dukex/rocklms/pkg/channels/kafka"
	"github.com/dukex/rocklms/pkg/eventbus"
)

// ConsumerGroup is the Kafka consumer group shared by the rocklms binaries.
const ConsumerGroup = "rocklms"

// NewEventBus creates the event bus for provider. The gochannel provider is
// in-process only; events cross process boundaries only with kafka.
func NewEventBus(provider string, brokers string, logger *slog.Logger) (eventbus.EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	switch provider {
	case "kafka":
		pub, sub, err := kafka.CreateChannel(wmLogger, ParseBrokers(brokers), ConsumerGroup)
		if err != nil {
			return nil, fmt.Errorf("failed to create Kafka pub/sub: %w", err)
		}

		return eventbus.NewWatermillEventBus(pub, sub), nil
	case "gochannel", "":
		pub, sub, err := gochannel.CreateChannel(wmLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create gochannel pub/sub: %w", err)
		}

		return eventbus.NewWatermillEventBus(pub, sub), nil
	default:
		return nil, fmt.Errorf("unsupported event bus provider: %s", provider)
	}
}

// ParseBrokers splits a comma separated broker list, dropping empty entries.
func ParseBrokers(brokers string) []string {
	var result []string

	for _, broker := range strings.Split(brokers, ",") {
		broker = strings.TrimSpace(broker)
		if broker != "" {
			result = append(result, broker)
		}
	}

	return result
}
