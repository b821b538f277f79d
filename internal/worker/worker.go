package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aescanero/dago-node-preview/internal/config"
	"github.com/aescanero/dago-node-preview/internal/preview"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// messageTimeout bounds preview, publish and ack of a single message
const messageTimeout = 30 * time.Second

// StreamClient is the subset of the Redis client used by the worker
type StreamClient interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
}

// Worker consumes preview requests from a Redis stream
type Worker struct {
	id            string
	config        *config.Config
	redisClient   StreamClient
	service       *preview.Service
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	streamKey     string
	consumerGroup string
	resultStream  string
}

// NewWorker creates a new worker
func NewWorker(
	cfg *config.Config,
	redisClient StreamClient,
	service *preview.Service,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		id:            cfg.WorkerID,
		config:        cfg,
		redisClient:   redisClient,
		service:       service,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		streamKey:     cfg.StreamKey,
		consumerGroup: cfg.ConsumerGroup,
		resultStream:  cfg.ResultStream,
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting preview worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
	)

	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	w.wg.Add(1)
	go w.processWork()

	w.logger.Info("preview worker started", zap.String("worker_id", w.id))
	return nil
}

// Stop stops reading new messages and waits, bounded by ctx, for the
// in-flight message to be published and acknowledged.
func (w *Worker) Stop(ctx context.Context) error {
	w.logger.Info("stopping preview worker", zap.String("worker_id", w.id))

	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("preview worker stopped", zap.String("worker_id", w.id))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker did not stop: %w", ctx.Err())
	}
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		// BUSYGROUP means the group already exists
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// processWork processes work from the Redis stream
func (w *Worker) processWork() {
	defer w.wg.Done()
	w.logger.Info("starting work processing loop")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("work processing loop stopped")
			return
		default:
			streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
				Group:    w.consumerGroup,
				Consumer: w.id,
				Streams:  []string{w.streamKey, ">"},
				Count:    1,
				Block:    w.config.BlockTime,
			}).Result()

			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				if w.ctx.Err() != nil {
					continue
				}
				w.logger.Error("failed to read from stream",
					zap.Error(err),
				)
				time.Sleep(time.Second)
				continue
			}

			for _, stream := range streams {
				for _, message := range stream.Messages {
					w.handleMessage(message)
				}
			}
		}
	}
}

// handleMessage handles a single preview request message. Stopping the worker
// does not cancel it; it always finishes with an ack.
func (w *Worker) handleMessage(message redis.XMessage) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(w.ctx), messageTimeout)
	defer cancel()

	messageID := message.ID
	w.logger.Debug("processing preview request",
		zap.String("message_id", messageID),
	)

	request, err := parseWorkRequest(message.Values)
	if err != nil {
		w.logger.Error("failed to parse work request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.acknowledgeMessage(ctx, messageID)
		return
	}

	result, err := w.service.Preview(ctx, request)
	if err != nil {
		w.logger.Error("failed to process preview request",
			zap.String("message_id", messageID),
			zap.String("request_id", request.ID),
			zap.Error(err),
		)
		if publishErr := w.publish(ctx, w.resultStream+".errors", newErrorEvent(request, err)); publishErr != nil {
			w.logger.Error("failed to publish error event", zap.Error(publishErr))
		}
	} else if err := w.publish(ctx, w.resultStream, newResultEvent(request, result)); err != nil {
		w.logger.Error("failed to publish preview result",
			zap.String("request_id", request.ID),
			zap.Error(err),
		)
	} else {
		w.logger.Info("published preview result",
			zap.String("request_id", request.ID),
			zap.Bool("rendered", result.Rendered),
		)
	}

	w.acknowledgeMessage(ctx, messageID)
}

// parseWorkRequest parses a preview request from a Redis message
func parseWorkRequest(values map[string]interface{}) (*preview.Request, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var request preview.Request
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal work request: %w", err)
	}

	if request.ID == "" {
		request.ID = uuid.NewString()
	}

	return &request, nil
}

// ResultEvent is published for every processed request
type ResultEvent struct {
	*preview.Result
	WorkerTimestamp time.Time `json:"timestamp"`
}

// ErrorEvent is published when a request cannot be processed
type ErrorEvent struct {
	RequestID string    `json:"id"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

func newResultEvent(request *preview.Request, result *preview.Result) ResultEvent {
	if result.ID == "" {
		result.ID = request.ID
	}
	return ResultEvent{Result: result, WorkerTimestamp: time.Now().UTC()}
}

func newErrorEvent(request *preview.Request, err error) ErrorEvent {
	return ErrorEvent{
		RequestID: request.ID,
		Error:     err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// publish marshals event and appends it to stream
func (w *Worker) publish(ctx context.Context, stream string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = w.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	return nil
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(ctx context.Context, messageID string) {
	err := w.redisClient.XAck(ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
