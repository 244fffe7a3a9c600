package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0 (got %v)", c.Auth.TokenTTL)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Database.LockTimeout < 0 {
		return fmt.Errorf("database.lock_timeout must be >= 0 (got %v)", c.Database.LockTimeout)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if err := c.Notify.validate(); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	if c.Documents.Root == "" {
		return fmt.Errorf("documents.root is required")
	}
	if c.Documents.MaxSize <= 0 {
		return fmt.Errorf("documents.max_size must be > 0 (got %d)", c.Documents.MaxSize)
	}

	if c.Suppliers.ScoreWindow <= 0 {
		return fmt.Errorf("suppliers.score_window must be > 0 (got %v)", c.Suppliers.ScoreWindow)
	}

	return nil
}

func (n *NotifyConfig) validate() error {
	drivers := splitList(strings.ToLower(n.DriversRaw))
	if len(drivers) == 0 {
		return fmt.Errorf("drivers: at least one driver required")
	}
	seen := make(map[string]bool, len(drivers))
	for _, d := range drivers {
		switch d {
		case DriverInbox, DriverNATS, DriverKafka:
		default:
			return fmt.Errorf("drivers: unknown driver %q", d)
		}
		if seen[d] {
			return fmt.Errorf("drivers: %q listed twice", d)
		}
		seen[d] = true
	}
	n.Drivers = drivers

	if n.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1 (got %d)", n.Concurrency)
	}

	if seen[DriverNATS] && strings.TrimSpace(n.NATSURL) == "" {
		return fmt.Errorf("nats_url is required for the nats driver")
	}

	n.KafkaBrokers = splitList(n.KafkaBrokersRaw)
	if seen[DriverKafka] {
		if len(n.KafkaBrokers) == 0 {
			return fmt.Errorf("kafka_brokers is required for the kafka driver")
		}
		if strings.TrimSpace(n.KafkaTopic) == "" {
			return fmt.Errorf("kafka_topic is required for the kafka driver")
		}
		if n.KafkaRetries < 0 {
			return fmt.Errorf("kafka_retries must be >= 0 (got %d)", n.KafkaRetries)
		}
	}

	return nil
}
