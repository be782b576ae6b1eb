package realtime

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"api/game"
)

// Debug-mode bots: simulated players that auto-select words and guess after
// staggered delays, for exercising a room without real opponents.

var botThinkingLines = []string{
	"hmm...",
	"I think I know!",
	"is it a...",
	"wait...",
	"oh!",
	"let me think...",
}

var botWrongGuesses = []string{
	"banana", "house", "tree", "dog", "cat", "sun", "star",
}

func (s *Server) registerBots(roomID uuid.UUID, botIDs []uuid.UUID) {
	s.botsLock.Lock()
	defer s.botsLock.Unlock()
	s.botSeats[roomID] = botIDs
}

func (s *Server) botsFor(roomID uuid.UUID) []uuid.UUID {
	s.botsLock.Lock()
	defer s.botsLock.Unlock()
	return append([]uuid.UUID(nil), s.botSeats[roomID]...)
}

func (s *Server) isBot(roomID, playerID uuid.UUID) bool {
	for _, id := range s.botsFor(roomID) {
		if id == playerID {
			return true
		}
	}
	return false
}

// CreateDebugRoomHandler builds a room with short rounds and two bot
// players already seated. Only mounted in debug mode.
func (s *Server) CreateDebugRoomHandler(ctx *gin.Context) {
	settings := game.DefaultSettings()
	settings.RoundDurationSeconds = 30
	settings.RoundsPerGame = 2

	userID := s.identityFor(ctx)
	room, host := s.games.CreateRoom(userID, "Debugger", "Debug Game", settings)

	_, alice, err := s.games.JoinRoom(room.ID(), "bot-player-1", "Bot Alice", "", false)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	_, bob, err := s.games.JoinRoom(room.ID(), "bot-player-2", "Bot Bob", "", false)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.registerBots(room.ID(), []uuid.UUID{alice.ID, bob.ID})

	ctx.JSON(http.StatusCreated, gin.H{
		"room":      room.Snapshot(),
		"player_id": host.ID,
		"user_id":   userID,
		"bots": []gin.H{
			{"id": alice.ID, "name": alice.UserName},
			{"id": bob.ID, "name": bob.UserName},
		},
	})
}

// maybeBotSelectWord picks a word on behalf of a bot drawer after a short
// thinking delay, then kicks off the round like a human selection would.
func (s *Server) maybeBotSelectWord(roomID uuid.UUID, turn game.TurnInfo) {
	if !s.isBot(roomID, turn.DrawerID) {
		return
	}
	time.Sleep(time.Second + time.Duration(rand.Intn(1000))*time.Millisecond)

	word := turn.WordOptions[rand.Intn(len(turn.WordOptions))]
	snap, err := s.games.SelectWord(roomID, turn.DrawerID, word)
	if err != nil {
		s.logger.Debug().Err(err).Msg("bot word selection failed")
		return
	}

	room, err := s.games.GetRoom(roomID)
	if err != nil {
		return
	}
	settings := room.Settings()
	s.hub.Broadcast(roomID, Event{Type: EvWordSelected, Data: gin.H{
		"word_hint":        snap.WordHint,
		"duration_seconds": settings.RoundDurationSeconds,
	}})
	go s.runRoundTimer(roomID, settings.RoundDurationSeconds, settings.HintsEnabled, settings.HintIntervals)
	go s.scheduleBotGuesses(roomID, turn.DrawerID)
}

// scheduleBotGuesses staggers the bots' guesses through the round: a
// thinking message, sometimes a wrong guess, then the correct word.
func (s *Server) scheduleBotGuesses(roomID, drawerID uuid.UUID) {
	room, err := s.games.GetRoom(roomID)
	if err != nil {
		return
	}
	word := room.CurrentWord()
	if word == "" {
		return
	}

	i := 0
	for _, botID := range s.botsFor(roomID) {
		if botID == drawerID {
			continue
		}
		delay := time.Duration(2+i*2)*time.Second + time.Duration(rand.Intn(1000))*time.Millisecond
		i++
		go s.botGuessAfterDelay(roomID, botID, word, delay)
	}
}

func (s *Server) botGuessAfterDelay(roomID, botID uuid.UUID, word string, delay time.Duration) {
	time.Sleep(delay * 3 / 10)

	room, err := s.games.GetRoom(roomID)
	if err != nil || room.State() != game.StateDrawing {
		return
	}
	bot := room.GetPlayer(botID)
	if bot == nil {
		return
	}

	s.handleChat(room, bot, botThinkingLines[rand.Intn(len(botThinkingLines))])

	if rand.Float64() < 0.4 {
		time.Sleep(500*time.Millisecond + time.Duration(rand.Intn(1000))*time.Millisecond)
		s.botGuess(room, bot, botWrongGuesses[rand.Intn(len(botWrongGuesses))])
	}

	time.Sleep(delay * 7 / 10)

	room, err = s.games.GetRoom(roomID)
	if err != nil || room.State() != game.StateDrawing {
		return
	}
	s.botGuess(room, bot, word)
}

// botGuess routes a bot's guess through the normal scoring path and
// broadcasts the same events a human guess would.
func (s *Server) botGuess(room *game.GameRoom, bot *game.Player, text string) {
	roomID := room.ID()
	guess, msg, err := s.games.SubmitGuess(roomID, bot.ID, text)
	if err != nil {
		s.logger.Debug().Err(err).Msg("bot guess failed")
		return
	}

	s.hub.Broadcast(roomID, Event{Type: EvChatMessage, Data: msg})

	if guess.Result == game.GuessCorrect {
		s.hub.Broadcast(roomID, Event{Type: EvCorrectGuess, Data: gin.H{
			"player_id": bot.ID,
			"name":      bot.UserName,
			"points":    guess.PointsAwarded,
		}})
		s.hub.Broadcast(roomID, Event{Type: EvScoreUpdate, Data: room.Leaderboard()})

		if room.AllGuessed() {
			s.finishRound(roomID)
		}
	}
}
