package redis

import (
	"fmt"

	"github.com/jumpigames/newsletter/internal/model"
)

// keys builds Redis keys under a configurable prefix
type keys struct {
	prefix string
}

// subscriber returns the key holding a Subscriber's JSON document
func (k keys) subscriber(id model.SubscriberID) string {
	return fmt.Sprintf("%s:subscriber:%s", k.prefix, id)
}

// emailIndex returns the key mapping a normalized email to its subscriber ID.
// Created with SETNX, it is the uniqueness constraint.
func (k keys) emailIndex(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", k.prefix, email)
}

// subscribedAtIndex returns the sorted set of subscriber IDs scored by
// subscription time in Unix microseconds
func (k keys) subscribedAtIndex() string {
	return fmt.Sprintf("%s:idx:subscribed_at", k.prefix)
}
