package notify

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/msp-lab/deskhawk/pkg/domain/interfaces"
)

// Multi fans one alert out to several notification channels. Delivery is
// attempted on every channel even when an earlier one fails; failures are
// joined into one error.
type Multi struct {
	notifiers []interfaces.Notifier
}

// NewMulti creates a fanout notifier over the given channels
func NewMulti(notifiers ...interfaces.Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

// Notify delivers the alert to every configured channel
func (m *Multi) Notify(ctx context.Context, subject, body string) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, subject, body); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return goerr.New("notification delivery failed on some channels",
			goerr.V("failed", len(errs)),
			goerr.V("total", len(m.notifiers)),
			goerr.V("errors", errs))
	}
	return nil
}

var _ interfaces.Notifier = (*Multi)(nil)
