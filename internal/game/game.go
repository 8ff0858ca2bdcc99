package game

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"tinyboards/internal/logging"
)

// Touch updates the last seen timestamp for a session
func (r *Room) Touch() {
	r.Mu.Lock()
	r.LastSeen = time.Now()
	r.Mu.Unlock()
}

// AddWatcher adds a new watcher channel
func (r *Room) AddWatcher(ch chan []byte) {
	r.Mu.Lock()
	r.Watchers[ch] = struct{}{}
	r.Mu.Unlock()
}

// RemoveWatcher removes a watcher channel
func (r *Room) RemoveWatcher(ch chan []byte) {
	r.Mu.Lock()
	delete(r.Watchers, ch)
	r.Mu.Unlock()
}

// idle reports whether the room has not been seen for longer than d.
func (r *Room) idle(d time.Duration) bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return time.Since(r.LastSeen) > d
}

// sendLocked marshals v and hands it to every watcher without blocking on slow ones.
// Must be called with the lock held.
func (r *Room) sendLocked(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Session(r.Kind, r.ID).WithError(err).Error("marshal state")
		return
	}
	for ch := range r.Watchers {
		select {
		case ch <- data:
		default:
		}
	}
}

// sessionID returns the storage key of the room. Rooms whose id is not a UUID are not
// stored.
func (r *Room) sessionID() (uuid.UUID, bool) {
	id, err := uuid.Parse(r.ID)
	if err != nil || r.store == nil {
		return uuid.Nil, false
	}
	return id, true
}

// warn logs a storage failure; storage never fails a game action.
func (r *Room) warn(err error, msg string) {
	if err != nil {
		logging.Session(r.Kind, r.ID).WithError(err).Warn(msg)
	}
}

func returnPath(kind string) string {
	if kind == KindChess {
		return "/menu"
	}
	return "/"
}
