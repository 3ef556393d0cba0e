// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"errors"

	"github.com/danielhkuo/phasecheck/models"
)

var (
	ErrNoContact = errors.New("no directory entry for user")
	ErrNoAddress = errors.New("no usable address for configured channels")
)

// channelOrder is tried after the contact's preferred channel.
var channelOrder = []string{models.ChannelEmail, models.ChannelSMS, models.ChannelLog}

// Notifier sends a user their phase recommendations over the first channel
// that has both a configured sender and an address for the user.
type Notifier struct {
	contacts ContactLookup
	senders  map[string]Sender
}

// NewNotifier creates a notifier. senders is keyed by channel
// (models.ChannelEmail, models.ChannelSMS, models.ChannelLog); nil entries
// are ignored.
func NewNotifier(contacts ContactLookup, senders map[string]Sender) *Notifier {
	n := &Notifier{contacts: contacts, senders: make(map[string]Sender)}
	for ch, s := range senders {
		if s != nil {
			n.senders[ch] = s
		}
	}
	return n
}

// Notify attempts delivery and reports the outcome. A missing contact or
// address is a skip, not a failure.
func (n *Notifier) Notify(ctx context.Context, userID string, phase models.Phase, recs []string) models.Delivery {
	c, ok := n.contacts.Lookup(userID)
	if !ok {
		return models.Delivery{Status: models.DeliverySkipped, Detail: ErrNoContact.Error()}
	}

	channel, to, sender := n.route(c)
	if sender == nil {
		return models.Delivery{Status: models.DeliverySkipped, Detail: ErrNoAddress.Error()}
	}

	msg, err := Render(userID, phase, recs)
	if err != nil {
		return models.Delivery{Channel: channel, Status: models.DeliveryFailed, Detail: err.Error()}
	}

	if err := sender.Send(ctx, to, msg); err != nil {
		return models.Delivery{Channel: channel, Status: models.DeliveryFailed, Detail: err.Error()}
	}

	return models.Delivery{Channel: channel, Status: models.DeliverySent}
}

func (n *Notifier) route(c Contact) (string, string, Sender) {
	candidates := channelOrder
	if c.Channel != "" {
		candidates = append([]string{c.Channel}, channelOrder...)
	}

	for _, ch := range candidates {
		sender, ok := n.senders[ch]
		if !ok {
			continue
		}
		if to := address(c, ch); to != "" {
			return ch, to, sender
		}
	}
	return "", "", nil
}

func address(c Contact, channel string) string {
	switch channel {
	case models.ChannelEmail:
		return c.Email
	case models.ChannelSMS:
		return c.Phone
	case models.ChannelLog:
		if c.Email != "" {
			return c.Email
		}
		if c.Phone != "" {
			return c.Phone
		}
		return c.UserID
	}
	return ""
}
