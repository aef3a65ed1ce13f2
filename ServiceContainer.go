package main

import (
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"formSheet/contracts"
	"formSheet/translator"
)

type ServiceContainer struct {
	Database          *bbolt.DB
	ApiController     contracts.ApiController
	FormRepository    contracts.FormRepository
	FormSessions      contracts.FormSessions
	Translator        contracts.Translator
	WebhookDispatcher contracts.WebhookDispatcher
	EventHub          contracts.EventHub
	Router            *gin.Engine
}

func BuildServiceContainer(config *Config, logger *zap.SugaredLogger) (container ServiceContainer, err error) {
	container.Database, err = bbolt.Open(config.DatabasePath, 0600, nil)
	if err != nil {
		err = errors.Wrapf(err, "open database `%s`", config.DatabasePath)
		return
	}

	serializer := NewCellBinarySerializer()
	webhookDispatcher := NewWebhookDispatcher(config.Webhook, logger.Named("webhook"))
	eventHub := NewEventHub(logger.Named("events"))

	container.WebhookDispatcher = webhookDispatcher
	container.EventHub = eventHub
	container.Translator = translator.NewExprTranslator()
	container.FormRepository = NewFormRepository(container.Database, serializer)
	container.FormSessions = NewFormSessions(
		container.FormRepository, container.Translator,
		func(formId string) contracts.HostNotifier {
			return NewNotifierChain(webhookDispatcher.NotifierFor(formId), eventHub.NotifierFor(formId))
		},
		logger.Named("sessions"),
	)
	container.ApiController = NewApiController(
		container.FormRepository, container.FormSessions, container.WebhookDispatcher, container.EventHub,
		logger.Named("api"),
	)

	container.Router = SetupRouter(container.ApiController)

	return
}
