package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Operation is the kind of change being announced.
type Operation string

const (
	// OperationCreateOrUpdate announces a created or modified entity.
	OperationCreateOrUpdate Operation = "CREATE_OR_UPDATE"
	// OperationDelete announces a removed entity.
	OperationDelete Operation = "DELETE"
)

// Entity names used by the reconciliation engine.
const (
	EntityStockEntry  = "stock_entry"
	EntityTransaction = "transaction"
	EntityListing     = "listing"
)

// Notifier receives a typed change event after each successful reconciliation
// step. Emission is fire-and-forget: implementations must never block the
// triggering action and have no error to return.
type Notifier interface {
	Emit(op Operation, entity string, payload any)
}

// Event is the wire shape of a change notification.
type Event struct {
	Operation Operation `json:"operation"`
	Entity    string    `json:"entity"`
	Payload   any       `json:"payload,omitempty"`
}

// LogNotifier writes change events to the application log. It is the default
// sink when no webhook endpoint is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Emit(op Operation, entity string, payload any) {
	n.logger.Info("state changed",
		zap.String("operation", string(op)),
		zap.String("entity", entity),
		zap.Any("payload", payload),
	)
}

// WebhookNotifier POSTs change events to a UI refresh endpoint. Delivery runs
// on its own goroutine; failures are logged and dropped.
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewWebhookNotifier creates a webhook-backed notifier.
func NewWebhookNotifier(url string, logger *zap.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (n *WebhookNotifier) Emit(op Operation, entity string, payload any) {
	body, err := json.Marshal(Event{Operation: op, Entity: entity, Payload: payload})
	if err != nil {
		n.logger.Warn("dropping unserializable change event",
			zap.String("entity", entity), zap.Error(err))
		return
	}

	go func() {
		resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
		if err != nil {
			n.logger.Warn("change notification delivery failed",
				zap.String("entity", entity), zap.Error(err))
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			n.logger.Warn("change notification rejected",
				zap.String("entity", entity), zap.Int("status", resp.StatusCode))
		}
	}()
}

// Multi fans one event out to several notifiers.
type Multi []Notifier

func (m Multi) Emit(op Operation, entity string, payload any) {
	for _, n := range m {
		n.Emit(op, entity, payload)
	}
}
