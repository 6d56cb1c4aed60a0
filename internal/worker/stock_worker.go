package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avolkau/storefront/internal/pkg/logger"
)

const (
	// Debounce window - collect events for same order within this duration
	debounceWindow = 1 * time.Second

	// EventOrderApproved is the only event type that triggers a deduction
	EventOrderApproved = "order.approved"

	// Retry configuration
	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond
)

// OrderEvent represents an order event from NATS
type OrderEvent struct {
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	OrderID   uuid.UUID `json:"order_id"`
	Number    string    `json:"number"`
}

// StockWorker processes order events and applies stock deductions asynchronously
type StockWorker struct {
	deducter *Deducter
	logger   *logger.Logger

	// Debouncing state
	mu             sync.Mutex
	pendingUpdates map[uuid.UUID]*pendingUpdate
	shutdownCh     chan struct{}
	wg             sync.WaitGroup
	ctx            context.Context
	cancel         context.CancelFunc
}

type pendingUpdate struct {
	orderID   uuid.UUID
	timestamp time.Time
	timer     *time.Timer
}

// NewStockWorker creates a new stock worker
func NewStockWorker(deducter *Deducter, logger *logger.Logger) *StockWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &StockWorker{
		deducter:       deducter,
		logger:         logger,
		pendingUpdates: make(map[uuid.UUID]*pendingUpdate),
		shutdownCh:     make(chan struct{}),
		ctx:            ctx,
		cancel:         cancel,
	}
}

// HandleEvent processes an order event
func (w *StockWorker) HandleEvent(data []byte) error {
	var event OrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		w.logger.WithFields(map[string]any{
			"error": err.Error(),
		}).Error("Failed to unmarshal order event", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	w.logger.WithFields(map[string]any{
		"event_type": event.EventType,
		"order_id":   event.OrderID.String(),
		"timestamp":  event.Timestamp,
	}).Info("Received order event")

	// Only approvals move stock
	if event.EventType != EventOrderApproved {
		return nil
	}

	// Schedule deduction with debouncing
	w.scheduleUpdate(event.OrderID, event.Timestamp)

	return nil
}

// scheduleUpdate implements debouncing logic
// Multiple events for same order within debounce window result in single DB update
func (w *StockWorker) scheduleUpdate(orderID uuid.UUID, timestamp time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Check if already shutting down
	select {
	case <-w.shutdownCh:
		w.logger.Info("Worker shutting down, ignoring new event")
		return
	default:
	}

	existing, found := w.pendingUpdates[orderID]

	if found {
		// Ignore stale events
		if timestamp.Before(existing.timestamp) {
			w.logger.WithFields(map[string]any{
				"order_id":    orderID.String(),
				"existing_ts": existing.timestamp,
				"event_ts":    timestamp,
			}).Debug("Ignoring stale event")
			return
		}

		// Cancel existing timer (we'll create a new one). Stop reports false
		// when the timer already fired: that run owns the current wg count
		// and will Done it, so the replacement timer needs its own slot.
		if !existing.timer.Stop() {
			w.wg.Add(1)
		}
		w.logger.WithFields(map[string]any{
			"order_id": orderID.String(),
		}).Debug("Debouncing: resetting timer for order")
	} else {
		// New order, increment wait group
		w.wg.Add(1)
	}

	// Create new timer for debounced update
	timer := time.AfterFunc(debounceWindow, func() {
		w.processUpdate(orderID)
	})

	w.pendingUpdates[orderID] = &pendingUpdate{
		orderID:   orderID,
		timestamp: timestamp,
		timer:     timer,
	}
}

// processUpdate executes the stock deduction with retry logic
func (w *StockWorker) processUpdate(orderID uuid.UUID) {
	defer w.wg.Done()

	w.mu.Lock()
	delete(w.pendingUpdates, orderID)
	w.mu.Unlock()

	w.logger.WithFields(map[string]any{
		"order_id": orderID.String(),
	}).Info("Processing stock deduction")

	// Retry loop with exponential backoff
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			w.logger.WithFields(map[string]any{
				"order_id":   orderID.String(),
				"attempt":    attempt + 1,
				"backoff_ms": backoff.Milliseconds(),
			}).Warn("Retrying stock deduction")

			select {
			case <-time.After(backoff):
				// Continue with retry
			case <-w.ctx.Done():
				w.logger.Info("Worker context cancelled, aborting retry")
				return
			}

			backoff *= 2
		}

		// Create context with timeout for each attempt
		ctx, cancel := context.WithTimeout(w.ctx, 5*time.Second)
		err := w.deducter.DeductForOrder(ctx, orderID)
		cancel()

		if err == nil {
			return
		}

		lastErr = err
		w.logger.WithFields(map[string]any{
			"order_id": orderID.String(),
			"attempt":  attempt + 1,
			"error":    err.Error(),
		}).Error("Failed to deduct stock", err)
	}

	// All retries exhausted
	w.logger.WithFields(map[string]any{
		"order_id":    orderID.String(),
		"max_retries": maxRetries,
		"error":       lastErr.Error(),
	}).Error("Stock deduction failed after all retries", lastErr)
}

// Shutdown gracefully shuts down the worker
// Cancels pending timers and waits for in-flight updates to complete
func (w *StockWorker) Shutdown(ctx context.Context) error {
	w.logger.Info("Shutting down stock worker...")

	// Signal shutdown to prevent new updates
	close(w.shutdownCh)

	// Cancel context to stop retries
	w.cancel()

	// Cancel all pending timers
	w.mu.Lock()
	pendingCount := len(w.pendingUpdates)
	for _, update := range w.pendingUpdates {
		// Only release the slot for timers we actually cancelled; a fired
		// timer's run does its own Done.
		if update.timer.Stop() {
			w.wg.Done()
		}
	}
	w.pendingUpdates = make(map[uuid.UUID]*pendingUpdate)
	w.mu.Unlock()

	w.logger.WithFields(map[string]any{
		"cancelled_updates": pendingCount,
	}).Info("Cancelled pending updates")

	// Wait for in-flight updates to complete or context timeout
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("All in-flight updates completed")
		return nil
	case <-ctx.Done():
		w.logger.Warn("Shutdown timeout reached, forcing exit")
		return ctx.Err()
	}
}

// GetPendingCount returns the number of pending updates (used for monitoring/testing)
func (w *StockWorker) GetPendingCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pendingUpdates)
}
