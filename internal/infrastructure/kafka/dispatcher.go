package kafka

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/swiftpos/backend/internal/domain"
	"github.com/swiftpos/backend/pkg/jitter"
	"github.com/swiftpos/backend/pkg/logger"
)

const queueCapacity = 256

// SaleProducer — то, что диспетчеру нужно от продюсера.
type SaleProducer interface {
	WriteSaleEvent(ctx context.Context, sale *domain.Sale) error
}

// Dispatcher асинхронно доставляет события продаж в Kafka.
// Хранилище складывает продажи в очередь и не ждет доставки;
// воркер публикует их с ограниченным числом повторов и джиттером.
type Dispatcher struct {
	producer   SaleProducer
	logger     logger.Logger
	queue      chan domain.Sale
	stop       chan struct{}
	wg         sync.WaitGroup
	maxRetries int
}

func NewDispatcher(producer SaleProducer, logger logger.Logger, maxRetries int) *Dispatcher {
	return &Dispatcher{
		producer:   producer,
		logger:     logger,
		queue:      make(chan domain.Sale, queueCapacity),
		stop:       make(chan struct{}),
		maxRetries: maxRetries,
	}
}

// Enqueue ставит продажу в очередь доставки. Никогда не блокируется:
// при переполнении очереди событие отбрасывается с предупреждением.
func (d *Dispatcher) Enqueue(sale domain.Sale) {
	select {
	case d.queue <- sale:
	default:
		d.logger.Warnf("sale event queue full, dropping event for sale %s", sale.ID)
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run(ctx)
	}()
}

// Stop дожидается, пока воркер дольет уже принятые события.
func (d *Dispatcher) Stop() {
	close(d.stop)
	d.wg.Wait()
}

func (d *Dispatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.stop:
			// Доливаем то, что уже в очереди
			for {
				select {
				case sale := <-d.queue:
					d.publish(ctx, sale)
				default:
					return
				}
			}
		case sale := <-d.queue:
			d.publish(ctx, sale)
		}
	}
}

// publish отправляет событие с повторами. Отказ после всех попыток
// логируется и проглатывается: доставка событий — best effort.
func (d *Dispatcher) publish(ctx context.Context, sale domain.Sale) {
	const (
		baseBackoff = 200 * time.Millisecond
		maxBackoff  = 5 * time.Second
	)

	var err error
	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		if attempt > 0 {
			sleep := jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt-1, jitter.DefaultJitter)
			select {
			case <-ctx.Done():
				return
			case <-time.After(sleep):
			}
		}

		if err = d.producer.WriteSaleEvent(ctx, &sale); err == nil {
			d.logger.Debugf("sale event published, sale_id: %s", sale.ID)
			return
		}

		if !isRetryableError(err) {
			break
		}
		d.logger.Warnf("temporary Kafka failure for sale %s (attempt %d/%d): %v", sale.ID, attempt+1, d.maxRetries+1, err)
	}

	d.logger.Warnf("giving up on sale event %s: %v", sale.ID, err)
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
