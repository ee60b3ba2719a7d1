package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_KafkaBrokers(t *testing.T) {
	t.Run("single host", func(t *testing.T) {
		c := Config{KafkaHost: "localhost:9092"}
		assert.Equal(t, []string{"localhost:9092"}, c.KafkaBrokers())
	})

	t.Run("comma separated cluster", func(t *testing.T) {
		c := Config{KafkaHost: "kafka-1:9092,kafka-2:9092, kafka-3:9092"}
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092", "kafka-3:9092"}, c.KafkaBrokers())
	})

	t.Run("empty entries are dropped", func(t *testing.T) {
		c := Config{KafkaHost: "kafka-1:9092,,"}
		assert.Equal(t, []string{"kafka-1:9092"}, c.KafkaBrokers())
	})
}
