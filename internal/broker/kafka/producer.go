package kafkabroker

import (
	"context"
	"time"

	errorsUtils "github.com/Egor213/LogiScan/pkg/errors"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

const (
	defaultWriteTimeout = 5 * time.Second
	// Each incident is a synchronous single-message write.
	defaultBatchTimeout = 10 * time.Millisecond
)

type ProducerConfig struct {
	Brokers []string
	Topic   string
}

// Producer publishes incidents to one topic. Messages with the same key
// (source IP) land on the same partition so per-IP order is kept.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(cfg ProducerConfig) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: defaultWriteTimeout,
		BatchTimeout: defaultBatchTimeout,
	}
	return &Producer{
		writer: w,
		topic:  cfg.Topic,
	}
}

func (p *Producer) SendMessage(ctx context.Context, key, value []byte) error {
	msg := kafka.Message{
		Key:   key,
		Value: value,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	log.WithField("topic", p.topic).Debugf("Message sent: key=%s", string(key))
	return nil
}

func (p *Producer) Close() error {
	log.Info("Closing Kafka producer...")
	return p.writer.Close()
}
