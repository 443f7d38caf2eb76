package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"gopherblog/internal/cache"
	"gopherblog/internal/model"
)

// PostEventWorker consumes post mutation events and drops the cached first
// listing page, keeping invalidation off the request path.
type PostEventWorker struct {
	conn      *amqp.Connection
	pageCache *cache.PageCache
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPostEventWorker(conn *amqp.Connection, pageCache *cache.PageCache, queueName string) *PostEventWorker {
	return &PostEventWorker{
		conn:      conn,
		pageCache: pageCache,
		queueName: queueName,
	}
}

func (w *PostEventWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var event model.PostEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					log.Printf("worker decode post event failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.pageCache.DeleteFirstPage(workerCtx); err != nil {
					// No requeue: the dirty-marker TTL already bounds
					// staleness, and redeliveries would hot-loop while
					// redis is down.
					log.Printf("worker invalidate page cache failed (event %s %s): %v", event.Action, event.PostID, err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *PostEventWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
