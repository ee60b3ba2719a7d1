package cmd

import "strings"

type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	KafkaHost           string
	KafkaMovementsTopic string
}

// KafkaBrokers splits KAFKA_HOST into the broker list the publisher dials.
// The variable holds either a single address or several separated by commas.
func (c Config) KafkaBrokers() []string {
	parts := strings.Split(c.KafkaHost, ",")
	brokers := make([]string, 0, len(parts))
	for _, part := range parts {
		if host := strings.TrimSpace(part); host != "" {
			brokers = append(brokers, host)
		}
	}
	return brokers
}
