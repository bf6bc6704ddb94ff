// Package handler provides the Handler interface and the built-in sinks a
// record can terminate in: the console, a rotating dated file, and an
// external chat gateway.
//
// Handlers perform exactly one externally visible effect. Gating is layered
// on with Filtered, which evaluates a conjunctive filter chain in front of
// any handler. The two concrete alert channels of the pipeline are exposed
// as constructors:
//
//   - NewChatAlert: opt-in, forwards only records marked to_tg=true.
//   - NewChatEscalation: opt-out, forwards everything at WARN and above
//     unless skip_tg=true.
//
// Both wrap the same Chat sink, giving two independently gated paths into
// one gateway. Chat recovers send failures at the handler boundary and
// reports them through a Fallback (normally the synchronous diagnostic
// router), so alerting failures remain observable without recursing into
// the failed channel.
package handler
