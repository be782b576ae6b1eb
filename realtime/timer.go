package realtime

import (
	"time"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
)

const roundEndPause = 5 * time.Second

// timerRegistry owns one cancelable countdown task per room. Starting a new
// timer for a room first cancels the previous one, so a round never leaks
// its predecessor's ticker.
type timerRegistry struct {
	locker  deadlock.Mutex
	cancels map[uuid.UUID]chan struct{}
}

func newTimerRegistry() *timerRegistry {
	return &timerRegistry{cancels: make(map[uuid.UUID]chan struct{})}
}

// start replaces the room's timer and returns the new cancel channel.
func (t *timerRegistry) start(roomID uuid.UUID) chan struct{} {
	t.locker.Lock()
	defer t.locker.Unlock()

	if prev, ok := t.cancels[roomID]; ok {
		close(prev)
	}
	cancel := make(chan struct{})
	t.cancels[roomID] = cancel
	return cancel
}

// stop cancels the room's timer if one is running.
func (t *timerRegistry) stop(roomID uuid.UUID) {
	t.locker.Lock()
	defer t.locker.Unlock()

	if cancel, ok := t.cancels[roomID]; ok {
		close(cancel)
		delete(t.cancels, roomID)
	}
}

// clear forgets a cancel channel only if it is still the registered one;
// the task calls this when it finishes on its own.
func (t *timerRegistry) clear(roomID uuid.UUID, cancel chan struct{}) {
	t.locker.Lock()
	defer t.locker.Unlock()

	if current, ok := t.cancels[roomID]; ok && current == cancel {
		delete(t.cancels, roomID)
	}
}

// runRoundTimer drives one drawing round: a tick per second with the time
// remaining, hint reveals at the configured checkpoints, and the round-end
// callback when the clock runs out.
func (s *Server) runRoundTimer(roomID uuid.UUID, duration int, hintsEnabled bool, hintIntervals []int) {
	cancel := s.timers.start(roomID)
	defer s.timers.clear(roomID, cancel)

	checkpoints := make(map[int]struct{}, len(hintIntervals))
	if hintsEnabled {
		for _, at := range hintIntervals {
			checkpoints[at] = struct{}{}
		}
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for elapsed := 0; elapsed < duration; {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			elapsed++
			s.hub.Broadcast(roomID, Event{Type: EvTimerUpdate, Data: map[string]int{
				"time_remaining": duration - elapsed,
			}})

			if _, ok := checkpoints[elapsed]; ok {
				if hint, ok := s.games.RevealHint(roomID); ok {
					s.hub.Broadcast(roomID, Event{Type: EvHintUpdate, Data: map[string]string{
						"word_hint": hint,
					}})
				}
			}
		}
	}

	s.finishRound(roomID)
}

// finishRound ends the current turn, broadcasts the reveal and either the
// final standings or, after a short pause, the next turn.
func (s *Server) finishRound(roomID uuid.UUID) {
	s.timers.stop(roomID)

	summary, err := s.games.EndRound(roomID)
	if err != nil {
		return
	}

	s.hub.Broadcast(roomID, Event{Type: EvRoundEnd, Data: summary})
	s.hub.Broadcast(roomID, Event{Type: EvScoreUpdate, Data: summary.Leaderboard})

	if summary.IsGameOver {
		s.hub.Broadcast(roomID, Event{Type: EvGameOver, Data: summary.Leaderboard})
		s.recordGameResults(roomID, summary.Leaderboard)
		s.notifyLobbyRoomUpdated(roomID)
		return
	}

	// The pause lives in the registry too, so reset_game or the room
	// closing cancels the pending auto-advance.
	cancel := s.timers.start(roomID)
	go func() {
		defer s.timers.clear(roomID, cancel)
		select {
		case <-cancel:
		case <-time.After(roundEndPause):
			s.beginNextTurn(roomID)
		}
	}()
}

// beginNextTurn rotates the drawer and hands out the next word options.
func (s *Server) beginNextTurn(roomID uuid.UUID) {
	turn, err := s.games.NextRound(roomID)
	if err != nil {
		s.logger.Debug().Str("room_id", roomID.String()).Err(err).Msg("could not start next round")
		return
	}
	s.announceTurn(roomID, turn)
}
