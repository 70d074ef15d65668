package lobby

import (
	"context"
	"sync"
	"time"

	"github.com/hilthontt/chatlobby/internal/domain"
	"github.com/hilthontt/chatlobby/internal/infrastructure/clipboard"
	"github.com/hilthontt/chatlobby/internal/infrastructure/logging"
	"github.com/hilthontt/chatlobby/internal/infrastructure/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/hilthontt/chatlobby/internal/lobby"

type IDGenerator interface {
	NewID() string
	NewRoomCode() string
}

// Lobby owns the session user, the room set and the current room. Every
// operation runs under one mutex; front ends render the snapshots it returns.
type Lobby struct {
	mu      sync.Mutex
	user    *domain.User
	current *domain.Room

	rooms     domain.RoomRepository
	names     domain.NameStore
	ids       IDGenerator
	clipboard clipboard.Writer
	toaster   *Toaster
	recorder  Recorder
	logger    logging.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

type Option func(*Lobby)

func WithClipboard(w clipboard.Writer) Option {
	return func(l *Lobby) { l.clipboard = w }
}

func WithToaster(t *Toaster) Option {
	return func(l *Lobby) { l.toaster = t }
}

func WithRecorder(r Recorder) Option {
	return func(l *Lobby) { l.recorder = r }
}

func WithLogger(logger logging.Logger) Option {
	return func(l *Lobby) { l.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(l *Lobby) { l.now = now }
}

// New starts a session as "Guest", replaced by the persisted display name
// when the name store has one.
func New(rooms domain.RoomRepository, names domain.NameStore, ids IDGenerator, opts ...Option) *Lobby {
	l := &Lobby{
		rooms:     rooms,
		names:     names,
		ids:       ids,
		clipboard: clipboard.NewSystem(),
		recorder:  nopRecorder{},
		logger:    logging.NewNop(),
		tracer:    tracing.GetTracer(tracerName),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.toaster == nil {
		l.toaster = NewToaster(DefaultToastVisible, DefaultToastFade, ids.NewID)
	}

	l.user = domain.NewUser(ids.NewID(), domain.DefaultUsername)
	if name, ok := names.LoadUsername(); ok && name != "" {
		l.user.Username = name
	}

	l.logger.Info(logging.Lobby, logging.Startup, "session started", map[logging.ExtraKey]any{
		logging.UserID: l.user.ID,
	})

	return l
}

func (l *Lobby) Toaster() *Toaster {
	return l.toaster
}

func (l *Lobby) toast(severity Severity, text string) {
	l.toaster.Show(severity, text)
	l.recorder.ToastShown(string(severity))
}

func (l *Lobby) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return l.tracer.Start(ctx, "lobby."+name, trace.WithAttributes(
		attribute.String("user.id", l.user.ID),
	))
}

// CurrentUser returns a copy of the session user.
func (l *Lobby) CurrentUser() UserView {
	l.mu.Lock()
	defer l.mu.Unlock()

	return userView(l.user)
}

// CurrentRoom returns the room the user is in, with its full message log.
func (l *Lobby) CurrentRoom() (RoomView, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return RoomView{}, false
	}
	return roomView(l.current, l.user.ID, true), true
}

// State is everything a front end needs to render one frame.
func (l *Lobby) State(ctx context.Context) (State, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	public, err := l.publicRoomsLocked(ctx)
	if err != nil {
		return State{}, err
	}

	state := State{
		User:        userView(l.user),
		PublicRooms: public,
		Toasts:      l.toaster.Active(),
	}
	if l.current != nil {
		rv := roomView(l.current, l.user.ID, true)
		state.CurrentRoom = &rv
	}
	return state, nil
}
