package lobby

import (
	"sync"
	"time"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

type Phase string

const (
	PhaseVisible Phase = "visible"
	PhaseFading  Phase = "fading"
)

const (
	DefaultToastVisible = 3 * time.Second
	DefaultToastFade    = 300 * time.Millisecond

	subscriberBuffer = 64
)

type Toast struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Text      string    `json:"text"`
	Phase     Phase     `json:"phase"`
	CreatedAt time.Time `json:"createdAt"`
}

type ToastEventType string

const (
	ToastShown     ToastEventType = "toast.shown"
	ToastFading    ToastEventType = "toast.fading"
	ToastDismissed ToastEventType = "toast.dismissed"
)

type ToastEvent struct {
	Type  ToastEventType `json:"type"`
	Toast Toast          `json:"toast"`
}

// Toaster keeps the transient notifications currently on screen. Each toast
// is visible for a fixed delay, fades, then disappears. The timers are never
// cancelled: a timer firing for a toast that is already gone does nothing.
type Toaster struct {
	visible time.Duration
	fade    time.Duration
	newID   func() string
	now     func() time.Time

	mu          sync.Mutex
	toasts      []Toast
	subscribers map[int]chan ToastEvent
	nextSub     int
}

func NewToaster(visible, fade time.Duration, newID func() string) *Toaster {
	if visible <= 0 {
		visible = DefaultToastVisible
	}
	if fade < 0 {
		fade = DefaultToastFade
	}

	return &Toaster{
		visible:     visible,
		fade:        fade,
		newID:       newID,
		now:         time.Now,
		subscribers: make(map[int]chan ToastEvent),
	}
}

func (t *Toaster) Show(severity Severity, text string) Toast {
	t.mu.Lock()
	toast := Toast{
		ID:        t.newID(),
		Severity:  severity,
		Text:      text,
		Phase:     PhaseVisible,
		CreatedAt: t.now(),
	}
	t.toasts = append(t.toasts, toast)
	t.publishLocked(ToastEvent{Type: ToastShown, Toast: toast})
	t.mu.Unlock()

	id := toast.ID
	time.AfterFunc(t.visible, func() { t.startFade(id) })
	time.AfterFunc(t.visible+t.fade, func() { t.Dismiss(id) })

	return toast
}

func (t *Toaster) startFade(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexLocked(id)
	if i < 0 {
		return
	}
	t.toasts[i].Phase = PhaseFading
	t.publishLocked(ToastEvent{Type: ToastFading, Toast: t.toasts[i]})
}

// Dismiss removes a toast ahead of its timers. It reports whether the toast
// was still present.
func (t *Toaster) Dismiss(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexLocked(id)
	if i < 0 {
		return false
	}
	toast := t.toasts[i]
	t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
	t.publishLocked(ToastEvent{Type: ToastDismissed, Toast: toast})
	return true
}

// Active returns the toasts currently on screen, oldest first.
func (t *Toaster) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Toast, len(t.toasts))
	copy(out, t.toasts)
	return out
}

// Subscribe returns a channel receiving every toast transition. A slow
// subscriber loses its oldest pending events rather than stall the toaster,
// so the latest transition always arrives. The returned func unsubscribes
// and closes the channel.
func (t *Toaster) Subscribe() (<-chan ToastEvent, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextSub
	t.nextSub++
	ch := make(chan ToastEvent, subscriberBuffer)
	t.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subscribers, id)
			t.mu.Unlock()
			close(ch)
		})
	}
}

func (t *Toaster) indexLocked(id string) int {
	for i := range t.toasts {
		if t.toasts[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Toaster) publishLocked(ev ToastEvent) {
	for _, ch := range t.subscribers {
		select {
		case ch <- ev:
			continue
		default:
		}
		// Full: evict the oldest event. Only this goroutine sends while the
		// lock is held, so the retry finds room.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}
