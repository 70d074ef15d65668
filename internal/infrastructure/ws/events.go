package ws

const (
	// ToastShownEvent, ToastFadingEvent and ToastDismissedEvent follow a
	// notification through its lifetime; Data carries the toast.
	ToastShownEvent     = "toast.shown"
	ToastFadingEvent    = "toast.fading"
	ToastDismissedEvent = "toast.dismissed"
)
