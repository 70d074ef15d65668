package domain

// Participants is the ordered, unique-by-ID list of users in a room.
type Participants []*User

func (p Participants) Find(userID string) *User {
	for _, u := range p {
		if u.ID == userID {
			return u
		}
	}
	return nil
}

func (p Participants) Contains(userID string) bool {
	return p.Find(userID) != nil
}

// Add appends u unless a participant with the same ID is already present.
// It reports whether the list changed.
func (p Participants) Add(u *User) (Participants, bool) {
	if u == nil || p.Contains(u.ID) {
		return p, false
	}
	return append(p, u), true
}

func (p Participants) Remove(userID string) (Participants, bool) {
	for i, u := range p {
		if u.ID == userID {
			out := make(Participants, 0, len(p)-1)
			out = append(out, p[:i]...)
			out = append(out, p[i+1:]...)
			return out, true
		}
	}
	return p, false
}
