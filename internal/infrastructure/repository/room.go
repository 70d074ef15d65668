package repository

import (
	"context"
	"sync"

	"github.com/hilthontt/chatlobby/internal/domain"
)

// roomRepository keeps rooms in memory in creation order. Rooms are never
// evicted; they leave the set only through Delete.
type roomRepository struct {
	rooms map[string]*domain.Room // ID -> Room
	order []string                // IDs in creation order
	mu    *sync.RWMutex
}

func NewRoomRepository() domain.RoomRepository {
	return &roomRepository{
		rooms: make(map[string]*domain.Room),
		order: make([]string, 0, 16),
		mu:    &sync.RWMutex{},
	}
}

// Create adds a room if its ID is unique. Codes are not checked for
// uniqueness.
func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	if room == nil || room.ID == "" || room.Code == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[room.ID]; exists {
		return domain.ErrInvalidInput
	}

	r.rooms[room.ID] = room
	r.order = append(r.order, room.ID)

	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, exists := r.rooms[id]
	if !exists {
		return nil, domain.ErrRoomNotFound
	}

	return room, nil
}

// GetByCode scans every room, public and private, in creation order and
// returns the first whose code matches exactly.
func (r *roomRepository) GetByCode(ctx context.Context, code string) (*domain.Room, error) {
	if code == "" {
		return nil, domain.ErrEmptyRoomCode
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if room := r.rooms[id]; room.Code == code {
			return room, nil
		}
	}

	return nil, domain.ErrRoomNotFound
}

func (r *roomRepository) Delete(ctx context.Context, room *domain.Room) error {
	if room == nil || room.ID == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[room.ID]; !exists {
		return domain.ErrRoomNotFound
	}

	delete(r.rooms, room.ID)
	for i, id := range r.order {
		if id == room.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

func (r *roomRepository) List(ctx context.Context) ([]*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Room, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rooms[id])
	}

	return out, nil
}
