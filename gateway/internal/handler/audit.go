package handler

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// ActionEvent is the audit record of one successful borrow-event mutation.
type ActionEvent struct {
	ID            string    `json:"id"`
	BorrowEventID int       `json:"borrow_event_id"`
	Action        string    `json:"action"`
	ActorID       string    `json:"actor_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type actionLog struct {
	producer sarama.AsyncProducer
	topic    string
}

// NewActionLog publishes to topic and logs delivery errors until the
// producer is closed.
func NewActionLog(log *zap.Logger, producer sarama.AsyncProducer, topic string) ActionLog {
	go func() {
		for err := range producer.Errors() {
			log.Warn("action log delivery", zap.Error(err))
		}
	}()
	return &actionLog{
		producer: producer,
		topic:    topic,
	}
}

func (l *actionLog) Log(ev ActionEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: l.topic,
		Key:   sarama.StringEncoder(ev.ActorID),
		Value: sarama.ByteEncoder(data),
	}
	l.producer.Input() <- msg
	return nil
}

type nopActionLog struct{}

func NewNopActionLog() ActionLog {
	return nopActionLog{}
}

func (nopActionLog) Log(ActionEvent) error { return nil }
