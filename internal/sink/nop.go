package sink

import "context"

// NopSink represents an environment with nowhere to deliver. Every Emit
// returns ErrNoDeliveryEnvironment.
type NopSink struct{}

// Name identifies the sink in logs and history.
func (NopSink) Name() string { return "none" }

// Emit always reports ErrNoDeliveryEnvironment.
func (NopSink) Emit(context.Context, []byte, string, string) error {
	return ErrNoDeliveryEnvironment
}
