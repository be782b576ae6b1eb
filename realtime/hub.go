package realtime

import (
	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
)

// Hub tracks which connections belong to which room, plus the set of lobby
// browser watchers. Broadcasts tolerate individual send failures: a failed
// connection is pruned without aborting the fan-out.
type Hub struct {
	locker deadlock.RWMutex

	// room id -> player id -> connection
	rooms map[uuid.UUID]map[uuid.UUID]*Conn
	// clients watching the public room list
	lobbyWatchers map[*Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms:         make(map[uuid.UUID]map[uuid.UUID]*Conn),
		lobbyWatchers: make(map[*Conn]struct{}),
	}
}

// Register binds a connection to a player's seat in a room, replacing any
// previous connection for that seat.
func (h *Hub) Register(roomID, playerID uuid.UUID, conn *Conn) {
	h.locker.Lock()
	defer h.locker.Unlock()

	conns, ok := h.rooms[roomID]
	if !ok {
		conns = make(map[uuid.UUID]*Conn)
		h.rooms[roomID] = conns
	}
	if prev, ok := conns[playerID]; ok && prev != conn {
		prev.Close("replaced by new connection")
	}
	conns[playerID] = conn
}

// Unregister drops a connection if it is still the one bound to the seat.
func (h *Hub) Unregister(roomID, playerID uuid.UUID, conn *Conn) {
	h.locker.Lock()
	defer h.locker.Unlock()

	conns, ok := h.rooms[roomID]
	if !ok {
		return
	}
	if current, ok := conns[playerID]; ok && current == conn {
		delete(conns, playerID)
	}
	if len(conns) == 0 {
		delete(h.rooms, roomID)
	}
}

// Drop closes and removes one player's connection.
func (h *Hub) Drop(roomID, playerID uuid.UUID, reason string) {
	h.locker.Lock()
	conn := h.rooms[roomID][playerID]
	if conn != nil {
		delete(h.rooms[roomID], playerID)
	}
	h.locker.Unlock()

	if conn != nil {
		conn.Close(reason)
	}
}

// DropRoom closes and forgets every connection of a room.
func (h *Hub) DropRoom(roomID uuid.UUID, reason string) {
	h.locker.Lock()
	conns := h.rooms[roomID]
	delete(h.rooms, roomID)
	h.locker.Unlock()

	for _, c := range conns {
		c.Close(reason)
	}
}

// Broadcast sends an event to every connection in a room.
func (h *Hub) Broadcast(roomID uuid.UUID, ev Event) {
	h.sendWhere(roomID, ev, nil)
}

// BroadcastExcept sends to everyone in the room but one player.
func (h *Hub) BroadcastExcept(roomID, except uuid.UUID, ev Event) {
	h.sendWhere(roomID, ev, func(playerID uuid.UUID) bool { return playerID != except })
}

// SendTo delivers an event to one player's connection. Reports whether the
// player had a live connection.
func (h *Hub) SendTo(roomID, playerID uuid.UUID, ev Event) bool {
	h.locker.RLock()
	conn := h.rooms[roomID][playerID]
	h.locker.RUnlock()

	if conn == nil {
		return false
	}
	if !conn.Send(ev) {
		h.Unregister(roomID, playerID, conn)
		conn.Close("send failed")
		return false
	}
	return true
}

func (h *Hub) sendWhere(roomID uuid.UUID, ev Event, include func(uuid.UUID) bool) {
	h.locker.RLock()
	targets := make(map[uuid.UUID]*Conn, len(h.rooms[roomID]))
	for playerID, conn := range h.rooms[roomID] {
		if include == nil || include(playerID) {
			targets[playerID] = conn
		}
	}
	h.locker.RUnlock()

	for playerID, conn := range targets {
		if !conn.Send(ev) {
			h.Unregister(roomID, playerID, conn)
			conn.Close("send failed")
		}
	}
}

// WatchLobby adds a connection to the room-list feed.
func (h *Hub) WatchLobby(conn *Conn) {
	h.locker.Lock()
	defer h.locker.Unlock()
	h.lobbyWatchers[conn] = struct{}{}
}

// UnwatchLobby removes a connection from the room-list feed.
func (h *Hub) UnwatchLobby(conn *Conn) {
	h.locker.Lock()
	defer h.locker.Unlock()
	delete(h.lobbyWatchers, conn)
}

// BroadcastLobby pushes a room-list change to all lobby watchers.
func (h *Hub) BroadcastLobby(ev Event) {
	h.locker.RLock()
	watchers := make([]*Conn, 0, len(h.lobbyWatchers))
	for c := range h.lobbyWatchers {
		watchers = append(watchers, c)
	}
	h.locker.RUnlock()

	for _, c := range watchers {
		if !c.Send(ev) {
			h.UnwatchLobby(c)
			c.Close("send failed")
		}
	}
}

// RoomConnectionCount reports how many live connections a room has.
func (h *Hub) RoomConnectionCount(roomID uuid.UUID) int {
	h.locker.RLock()
	defer h.locker.RUnlock()
	return len(h.rooms[roomID])
}
