package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
	"github.com/swiftpos/backend/internal/cfg"
	"github.com/swiftpos/backend/internal/domain"
	"github.com/swiftpos/backend/pkg/e"
	"github.com/swiftpos/backend/pkg/logger"
)

// SaleRecordedEvent — полезная нагрузка события о зафиксированной продаже.
type SaleRecordedEvent struct {
	EventID        string  `json:"event_id"`
	EventTimestamp int64   `json:"event_timestamp"`
	SaleID         string  `json:"sale_id"`
	Date           string  `json:"date"`
	Subtotal       float64 `json:"subtotal"`
	Tax            float64 `json:"tax"`
	TotalAmount    float64 `json:"total_amount"`
	ItemCount      int     `json:"item_count"`
}

type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) (*Producer, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %s", err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// WriteSaleEvent публикует событие sale.recorded, ключ партиционирования — ID продажи.
func (p *Producer) WriteSaleEvent(ctx context.Context, sale *domain.Sale) error {
	value, err := p.GetPayloadBytes(sale)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(sale.ID),
		Value: value,
	})
}

func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		err := conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func (p *Producer) GetPayloadBytes(sale *domain.Sale) ([]byte, error) {
	event := &SaleRecordedEvent{
		EventID:        uuid.NewString(),
		EventTimestamp: time.Now().UnixNano(),
		SaleID:         sale.ID,
		Date:           sale.Date,
		Subtotal:       sale.Subtotal,
		Tax:            sale.Tax,
		TotalAmount:    sale.TotalAmount,
		ItemCount:      len(sale.SoldItems),
	}

	return json.Marshal(event)
}
