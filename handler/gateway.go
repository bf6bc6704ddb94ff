package handler

import (
	"github.com/mvdberg/alertlog/core"
	"github.com/mvdberg/alertlog/filter"
	"github.com/mvdberg/alertlog/gateway"
)

// Chat delivers records to an external chat gateway. Send failures are
// terminal at this boundary: they are reported through the fallback and
// never returned to the dispatching router, so a gateway outage cannot
// reach the producers or recurse into the chat channel itself.
type Chat struct {
	sender   gateway.Sender
	fallback Fallback
}

// NewChat creates a chat handler. fallback may be nil, in which case send
// failures are dropped silently.
func NewChat(sender gateway.Sender, fallback Fallback) *Chat {
	return &Chat{sender: sender, fallback: fallback}
}

// Handle sends the record's message, truncated to the gateway limit
func (h *Chat) Handle(r *core.Record) error {
	if err := h.sender.Send(gateway.Truncate(r.Message), r.Level); err != nil {
		if h.fallback != nil {
			h.fallback.Errorf("chat delivery failed: %v", err)
		}
	}
	return nil
}

// Close is a no-op; the sender is owned by the caller
func (h *Chat) Close() error {
	return nil
}

// NewChatAlert builds the primary alert channel: strictly opt-in, only
// records explicitly marked to_tg=true are forwarded to the gateway.
func NewChatAlert(sender gateway.Sender, fallback Fallback) Handler {
	return NewFiltered(
		NewChat(sender, fallback),
		filter.Attr{Key: "to_tg", Want: true, Default: false},
	)
}

// NewChatEscalation builds the error-escalation channel: every record at
// WARN or above is forwarded unless the emitter opted out with skip_tg=true.
func NewChatEscalation(sender gateway.Sender, fallback Fallback) Handler {
	return NewFiltered(
		NewChat(sender, fallback),
		filter.MinLevel(core.WarnLevel),
		filter.Attr{Key: "skip_tg", Want: false, Default: false},
	)
}
