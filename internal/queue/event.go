// Package queue defines message payloads exchanged over the message broker.
package queue

// OutboundSMSEvent is published when the API wants a text message delivered.
// The dispatcher consuming the sms.outbound queue performs the actual
// gateway call, so a slow or flaky SMS provider never blocks a request.
type OutboundSMSEvent struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
	Purpose     string `json:"purpose"`
	RequestedAt string `json:"requested_at"`
}
