package lobby

import "github.com/hilthontt/chatlobby/internal/domain"

// Recorder receives lobby activity for metrics.
type Recorder interface {
	RoomCreated(privacy domain.Privacy)
	RoomDeleted()
	MessageSent()
	ToastShown(severity string)
}

type nopRecorder struct{}

func (nopRecorder) RoomCreated(domain.Privacy) {}
func (nopRecorder) RoomDeleted()               {}
func (nopRecorder) MessageSent()               {}
func (nopRecorder) ToastShown(string)          {}
