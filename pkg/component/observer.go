package component

import "context"

// Observer is notified of a Host's lifecycle transitions.
type Observer interface {
	// Attached runs when the host connects. A non-nil error aborts the
	// remaining observers and is returned from Connect.
	Attached(ctx context.Context, h *Host) error

	// Detached runs when the host disconnects.
	Detached(ctx context.Context, h *Host) error
}

// Hooks adapts plain functions to Observer. Either field may be nil.
type Hooks struct {
	OnAttach func(ctx context.Context, h *Host) error
	OnDetach func(ctx context.Context, h *Host) error
}

// Attached implements Observer.
func (k Hooks) Attached(ctx context.Context, h *Host) error {
	if k.OnAttach == nil {
		return nil
	}
	return k.OnAttach(ctx, h)
}

// Detached implements Observer.
func (k Hooks) Detached(ctx context.Context, h *Host) error {
	if k.OnDetach == nil {
		return nil
	}
	return k.OnDetach(ctx, h)
}
