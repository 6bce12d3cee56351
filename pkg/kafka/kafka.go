package kafka

import (
	"github.com/IBM/sarama"
)

const ActionTopic = "borrow-actions"

type Config struct {
	Addrs       []string `envconfig:"KAFKA_ADDRS"`
	ActionTopic string   `envconfig:"KAFKA_ACTION_TOPIC" default:"borrow-actions"`
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

func NewAsyncProducer(cfg Config) (sarama.AsyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForLocal
	defaultCfg.Producer.Return.Successes = false
	defaultCfg.Producer.Return.Errors = true

	return sarama.NewAsyncProducer(cfg.Addrs, defaultCfg)
}
