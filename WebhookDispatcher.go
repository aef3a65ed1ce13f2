package main

import (
	"bytes"
	"hash/fnv"
	"net/http"
	"sync"
	"time"

	json "github.com/bytedance/sonic"
	"go.uber.org/zap"

	"formSheet/contracts"
)

const WebhookWorkersCount = 5

const webhookQueueSize = 20

type WebhookSendCommand struct {
	Webhook string
	Payload WebhookPayload
}

type WebhookPayload struct {
	FormId  string                `json:"formId"`
	Message contracts.HostMessage `json:"message"`
}

// WebhookDispatcher posts the host messages of a form to the webhook registered for it.
// Each form is served by one worker queue, so its messages are delivered in order.
type WebhookDispatcher struct {
	mu       sync.RWMutex
	queues   []chan WebhookSendCommand
	webhooks map[string]string
	closed   bool
	timeout  time.Duration
	logger   *zap.SugaredLogger
}

func NewWebhookDispatcher(config WebhookConfig, logger *zap.SugaredLogger) *WebhookDispatcher {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if config.Workers < 1 {
		config.Workers = WebhookWorkersCount
	}
	if config.QueueSize < 1 {
		config.QueueSize = webhookQueueSize
	}
	if config.TimeoutSeconds < 1 {
		config.TimeoutSeconds = 5
	}

	queues := make([]chan WebhookSendCommand, config.Workers)
	for i := range queues {
		queues[i] = make(chan WebhookSendCommand, config.QueueSize)
	}

	return &WebhookDispatcher{
		queues:   queues,
		webhooks: map[string]string{},
		timeout:  time.Duration(config.TimeoutSeconds) * time.Second,
		logger:   logger,
	}
}

func (manager *WebhookDispatcher) SetWebhookUrl(formId string, webhookUrl string) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if webhookUrl == "" {
		delete(manager.webhooks, formId)
	} else {
		manager.webhooks[formId] = webhookUrl
	}
}

func (manager *WebhookDispatcher) GetWebhookUrl(formId string) string {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	return manager.webhooks[formId]
}

func (manager *WebhookDispatcher) NotifierFor(formId string) contracts.HostNotifier {
	return &formWebhookNotifier{dispatcher: manager, formId: formId}
}

// Notify enqueues the message in call order; it is dropped when the queue is full
func (manager *WebhookDispatcher) Notify(formId string, message contracts.HostMessage) {
	manager.enqueue(formId, message)
}

func (manager *WebhookDispatcher) enqueue(formId string, message contracts.HostMessage) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	webhook, ok := manager.webhooks[formId]
	if !ok || manager.closed {
		return false
	}

	select {
	case manager.queueOf(formId) <- WebhookSendCommand{
		Webhook: webhook,
		Payload: WebhookPayload{FormId: formId, Message: message},
	}:
		return true
	default:
		manager.logger.Warnw("webhook queue is full, message dropped", "form", formId, "type", message.Type)
		return false
	}
}

func (manager *WebhookDispatcher) queueOf(formId string) chan WebhookSendCommand {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(formId))
	return manager.queues[hash.Sum32()%uint32(len(manager.queues))]
}

func (manager *WebhookDispatcher) Start() {
	for _, queue := range manager.queues {
		go manager.runWebhookSenderWorker(queue)
	}
}

func (manager *WebhookDispatcher) Close() {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if !manager.closed {
		manager.closed = true
		for _, queue := range manager.queues {
			close(queue)
		}
	}
}

func (manager *WebhookDispatcher) runWebhookSenderWorker(queue <-chan WebhookSendCommand) {
	client := &http.Client{
		Timeout: manager.timeout,
	}

	for command := range queue {
		payload, err := json.Marshal(command.Payload)
		if err != nil {
			manager.logger.Warnw("webhook payload encode failed", "form", command.Payload.FormId, "error", err)
			continue
		}

		response, err := client.Post(command.Webhook, "application/json", bytes.NewBuffer(payload))
		if err != nil {
			manager.logger.Warnw("webhook send failed", "form", command.Payload.FormId, "webhook", command.Webhook, "error", err)
			continue
		}
		_ = response.Body.Close()

		if response.StatusCode >= 300 {
			manager.logger.Warnw("unexpected webhook response", "form", command.Payload.FormId, "webhook", command.Webhook, "status", response.Status)
		}
	}
}

type formWebhookNotifier struct {
	dispatcher *WebhookDispatcher
	formId     string
}

func (n *formWebhookNotifier) Notify(message contracts.HostMessage) {
	n.dispatcher.Notify(n.formId, message)
}
