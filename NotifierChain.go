package main

import "formSheet/contracts"

// NotifierChain delivers every host message to each notifier in order
type NotifierChain []contracts.HostNotifier

func NewNotifierChain(notifiers ...contracts.HostNotifier) contracts.HostNotifier {
	chain := make(NotifierChain, 0, len(notifiers))
	for _, notifier := range notifiers {
		if notifier != nil {
			chain = append(chain, notifier)
		}
	}

	if len(chain) == 1 {
		return chain[0]
	}
	return chain
}

func (c NotifierChain) Notify(message contracts.HostMessage) {
	for _, notifier := range c {
		notifier.Notify(message)
	}
}
