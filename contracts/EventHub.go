package contracts

import "net/http"

// EventHub streams the host messages of a form to websocket clients
type EventHub interface {
	Serve(formId string, w http.ResponseWriter, r *http.Request) error
	NotifierFor(formId string) HostNotifier
	Close()
}
