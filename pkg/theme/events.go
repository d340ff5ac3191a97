package theme

// UpdateType identifies what changed about the chat background.
type UpdateType int

const (
	// UpdateNew reports a new background image.
	UpdateNew UpdateType = iota
	// UpdateChanged reports a tiling change for the current image.
	UpdateChanged
	// UpdateTestingTheme reports that a candidate theme is being previewed.
	UpdateTestingTheme
	// UpdateApplyingTheme reports that a previewed theme was committed.
	UpdateApplyingTheme
	// UpdateRevertingTheme reports that a preview was cancelled.
	UpdateRevertingTheme
)

// BackgroundUpdate is broadcast to observers whenever the chat background
// needs repainting.
type BackgroundUpdate struct {
	Type  UpdateType
	Tiled bool
}

// Notifier delivers BackgroundUpdate events to subscribers. Everything runs
// on the host UI thread, so there is no locking. A broadcast identical to
// the previous one is dropped unless forced: preview transitions force
// delivery because the on-screen pixmap may be unchanged while the palette
// is not.
type Notifier struct {
	subs []func(BackgroundUpdate)
	last *BackgroundUpdate
}

// Subscribe registers an observer. Observers cannot be removed; they live
// as long as the Manager that owns the Notifier.
func (n *Notifier) Subscribe(fn func(BackgroundUpdate)) {
	n.subs = append(n.subs, fn)
}

func (n *Notifier) broadcast(update BackgroundUpdate, forced bool) {
	if !forced && n.last != nil && *n.last == update {
		return
	}
	n.last = &update
	for _, fn := range n.subs {
		fn(update)
	}
}
