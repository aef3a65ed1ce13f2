package contracts

type WebhookDispatcher interface {
	SetWebhookUrl(formId string, webhookUrl string)
	GetWebhookUrl(formId string) string
	// NotifierFor returns the host channel which posts the messages of formId to its webhook
	NotifierFor(formId string) HostNotifier
	Start()
	Close()
}
