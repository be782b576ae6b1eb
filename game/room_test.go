package game

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"api/wordbank"
)

func newTestRoom(t *testing.T) (*GameRoom, *Player) {
	t.Helper()
	room := newRoom("ABC123", "Test Room", DefaultSettings(), wordbank.New())
	host := NewPlayer("user-host", "Host")
	require.NoError(t, room.AddPlayer(host))
	return room, host
}

func startedRoom(t *testing.T) (*GameRoom, *Player, *Player, TurnInfo) {
	t.Helper()
	room, host := newTestRoom(t)
	guest := NewPlayer("user-guest", "Guest")
	require.NoError(t, room.AddPlayer(guest))

	turn, err := room.StartGame(host.ID)
	require.NoError(t, err)
	return room, host, guest, turn
}

func TestAddPlayer_FirstPlayerBecomesHost(t *testing.T) {
	room, host := newTestRoom(t)

	assert.True(t, host.IsHost)
	assert.Equal(t, host.ID, room.HostID())
}

func TestAddPlayer_RoomFull(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxPlayers = 2
	room := newRoom("ABC123", "Full Room", settings, wordbank.New())

	require.NoError(t, room.AddPlayer(NewPlayer("u1", "One")))
	require.NoError(t, room.AddPlayer(NewPlayer("u2", "Two")))

	err := room.AddPlayer(NewPlayer("u3", "Three"))
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Contains(t, stateErr.Reason, "full")

	// Spectators bypass the capacity limit.
	spectator := NewPlayer("u4", "Watcher")
	spectator.IsSpectator = true
	assert.NoError(t, room.AddPlayer(spectator))
}

func TestAddPlayer_BannedUserCannotJoin(t *testing.T) {
	room, host := newTestRoom(t)
	guest := NewPlayer("user-guest", "Guest")
	require.NoError(t, room.AddPlayer(guest))

	_, err := room.BanPlayer(host.ID, guest.ID)
	require.NoError(t, err)

	// New player object, same external user: still banned.
	err = room.AddPlayer(NewPlayer("user-guest", "Guest Again"))
	assert.Error(t, err)

	ok, err := room.UnbanPlayer(host.ID, "user-guest")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, room.AddPlayer(NewPlayer("user-guest", "Guest Again")))
}

func TestRemovePlayer_HostReassigned(t *testing.T) {
	room, host := newTestRoom(t)
	guest := NewPlayer("user-guest", "Guest")
	require.NoError(t, room.AddPlayer(guest))

	room.RemovePlayer(host.ID)

	assert.Equal(t, guest.ID, room.HostID())
	assert.True(t, guest.IsHost)
}

func TestRemovePlayer_SpectatorNeverBecomesHost(t *testing.T) {
	room, host := newTestRoom(t)
	watcher := NewPlayer("user-watcher", "Watcher")
	watcher.IsSpectator = true
	require.NoError(t, room.AddPlayer(watcher))
	guest := NewPlayer("user-guest", "Guest")
	require.NoError(t, room.AddPlayer(guest))

	room.RemovePlayer(host.ID)

	assert.Equal(t, guest.ID, room.HostID())
	assert.False(t, watcher.IsHost)
}

func TestRemovePlayer_LastPlayerClearsHost(t *testing.T) {
	room, host := newTestRoom(t)

	room.RemovePlayer(host.ID)

	assert.Equal(t, uuid.Nil, room.HostID())
}

func TestNextTurn_OnlyBetweenRounds(t *testing.T) {
	lobby, _ := newTestRoom(t)
	_, err := lobby.NextTurn()
	assert.Error(t, err)
	assert.Equal(t, StateLobby, lobby.State())

	room, _, _, turn := startedRoom(t)

	// The first turn is still in word selection.
	_, err = room.NextTurn()
	assert.Error(t, err)
	assert.Equal(t, StateWordSelection, room.State())

	_, err = room.SelectWord(turn.DrawerID, turn.WordOptions[0])
	require.NoError(t, err)

	// A live round is never replaced.
	_, err = room.NextTurn()
	assert.Error(t, err)
	assert.Equal(t, StateDrawing, room.State())

	_, err = room.EndRound()
	require.NoError(t, err)

	next, err := room.NextTurn()
	require.NoError(t, err)
	assert.NotEqual(t, turn.DrawerID, next.DrawerID)
}

func TestMarkDisconnected_HostReassigned(t *testing.T) {
	room, host := newTestRoom(t)
	guest := NewPlayer("user-guest", "Guest")
	require.NoError(t, room.AddPlayer(guest))

	newHost, kept := room.MarkDisconnected(host.ID)

	assert.True(t, kept)
	require.NotNil(t, newHost)
	assert.Equal(t, guest.ID, newHost.ID)
	assert.Equal(t, guest.ID, room.HostID())
	assert.True(t, guest.IsHost)
	assert.False(t, host.IsHost)
}

func TestMarkDisconnected_HostVacantUntilReconnect(t *testing.T) {
	room, host := newTestRoom(t)

	newHost, kept := room.MarkDisconnected(host.ID)
	assert.True(t, kept)
	assert.Nil(t, newHost)
	assert.Equal(t, uuid.Nil, room.HostID())

	// The old host reclaims the vacant role on reconnect.
	back := room.Rejoin(host.UserID)
	require.NotNil(t, back)
	assert.Equal(t, host.ID, room.HostID())
	assert.True(t, back.IsHost)
}

func TestMarkDisconnected_HostNotGivenToSpectator(t *testing.T) {
	room, host := newTestRoom(t)
	watcher := NewPlayer("user-watcher", "Watcher")
	watcher.IsSpectator = true
	require.NoError(t, room.AddPlayer(watcher))

	newHost, kept := room.MarkDisconnected(host.ID)

	assert.True(t, kept)
	assert.Nil(t, newHost)
	assert.Equal(t, uuid.Nil, room.HostID())
	assert.False(t, watcher.IsHost)

	// A rejoining spectator never picks up the vacant role either.
	room.MarkDisconnected(watcher.ID)
	room.Rejoin(watcher.UserID)
	assert.Equal(t, uuid.Nil, room.HostID())
}

func TestStartGame_RequiresHostAndTwoPlayers(t *testing.T) {
	room, host := newTestRoom(t)

	_, err := room.StartGame(host.ID)
	assert.Error(t, err, "single player cannot start")

	guest := NewPlayer("user-guest", "Guest")
	require.NoError(t, room.AddPlayer(guest))

	_, err = room.StartGame(guest.ID)
	assert.Error(t, err, "non-host cannot start")

	turn, err := room.StartGame(host.ID)
	require.NoError(t, err)
	assert.Equal(t, StateWordSelection, room.State())
	assert.Len(t, turn.WordOptions, 3)
	assert.Equal(t, host.ID, turn.DrawerID, "first drawer is the first guesser")
}

func TestSelectWord_OnlyDrawerAndOnlyOfferedWords(t *testing.T) {
	room, _, guest, turn := startedRoom(t)

	_, err := room.SelectWord(guest.ID, turn.WordOptions[0])
	assert.Error(t, err)

	_, err = room.SelectWord(turn.DrawerID, "definitely-not-offered")
	assert.Error(t, err)

	snap, err := room.SelectWord(turn.DrawerID, strings.ToUpper(turn.WordOptions[0]))
	require.NoError(t, err)
	assert.Equal(t, StateDrawing, room.State())
	assert.NotEmpty(t, snap.WordHint)
	assert.NotContains(t, snap.WordHint, turn.WordOptions[0])
}

func TestSubmitGuess_CorrectAwardsGuesserAndDrawer(t *testing.T) {
	room, host, guest, turn := startedRoom(t)
	word := turn.WordOptions[0]
	_, err := room.SelectWord(turn.DrawerID, word)
	require.NoError(t, err)

	guess, msg, err := room.SubmitGuess(guest.ID, word)
	require.NoError(t, err)

	assert.Equal(t, GuessCorrect, guess.Result)
	assert.GreaterOrEqual(t, guess.PointsAwarded, 100)
	assert.LessOrEqual(t, guess.PointsAwarded, 1000)
	assert.Equal(t, ChatCorrect, msg.Type)

	assert.Equal(t, guess.PointsAwarded, guest.Score)
	assert.Equal(t, guess.PointsAwarded/2, host.Score, "drawer gets half")
}

func TestSubmitGuess_RejectedBranches(t *testing.T) {
	room, _, guest, turn := startedRoom(t)
	word := turn.WordOptions[0]
	_, err := room.SelectWord(turn.DrawerID, word)
	require.NoError(t, err)

	spectator := NewPlayer("user-spec", "Watcher")
	spectator.IsSpectator = true
	require.NoError(t, room.AddPlayer(spectator))

	guess, _, err := room.SubmitGuess(spectator.ID, word)
	require.NoError(t, err)
	assert.Equal(t, GuessInvalid, guess.Result)
	assert.Zero(t, spectator.Score)

	guess, _, err = room.SubmitGuess(turn.DrawerID, word)
	require.NoError(t, err)
	assert.Equal(t, GuessDrawer, guess.Result)

	_, _, err = room.SubmitGuess(guest.ID, word)
	require.NoError(t, err)
	guess, _, err = room.SubmitGuess(guest.ID, word)
	require.NoError(t, err)
	assert.Equal(t, GuessAlreadyGuessed, guess.Result)
}

func TestSubmitGuess_WrongGuessBroadcastAsChat(t *testing.T) {
	room, _, guest, turn := startedRoom(t)
	_, err := room.SelectWord(turn.DrawerID, turn.WordOptions[0])
	require.NoError(t, err)

	guess, msg, err := room.SubmitGuess(guest.ID, "zzzzzzz")
	require.NoError(t, err)
	assert.Equal(t, GuessWrong, guess.Result)
	assert.Equal(t, ChatGuess, msg.Type)
	assert.Equal(t, "zzzzzzz", msg.Content)
	assert.Zero(t, guest.Score)
}

func TestAllGuessed(t *testing.T) {
	room, _, guest, turn := startedRoom(t)
	word := turn.WordOptions[0]
	_, err := room.SelectWord(turn.DrawerID, word)
	require.NoError(t, err)

	assert.False(t, room.AllGuessed())

	_, _, err = room.SubmitGuess(guest.ID, word)
	require.NoError(t, err)
	assert.True(t, room.AllGuessed())
}

func TestEndRound_AdvancesStateAndLeaderboard(t *testing.T) {
	room, _, guest, turn := startedRoom(t)
	word := turn.WordOptions[0]
	_, err := room.SelectWord(turn.DrawerID, word)
	require.NoError(t, err)
	_, _, err = room.SubmitGuess(guest.ID, word)
	require.NoError(t, err)

	summary, err := room.EndRound()
	require.NoError(t, err)

	assert.Equal(t, word, summary.Word)
	assert.Equal(t, turn.DrawerID, summary.DrawerID)
	assert.False(t, summary.IsGameOver)
	assert.Equal(t, StateRoundEnd, room.State())

	require.Len(t, summary.Leaderboard, 2)
	assert.Equal(t, guest.ID, summary.Leaderboard[0].PlayerID, "top scorer first")
}

func TestGameOver_AfterAllTurns(t *testing.T) {
	settings := DefaultSettings()
	settings.RoundsPerGame = 1
	room := newRoom("ABC123", "Short Game", settings, wordbank.New())
	host := NewPlayer("u1", "One")
	guest := NewPlayer("u2", "Two")
	require.NoError(t, room.AddPlayer(host))
	require.NoError(t, room.AddPlayer(guest))

	turn, err := room.StartGame(host.ID)
	require.NoError(t, err)

	// 1 round x 2 players = 2 turns.
	for i := 0; i < 2; i++ {
		_, err = room.SelectWord(turn.DrawerID, turn.WordOptions[0])
		require.NoError(t, err)
		summary, err := room.EndRound()
		require.NoError(t, err)

		if i == 0 {
			assert.False(t, summary.IsGameOver)
			turn, err = room.NextTurn()
			require.NoError(t, err)
			assert.Equal(t, guest.ID, turn.DrawerID, "drawer rotates")
		} else {
			assert.True(t, summary.IsGameOver)
			assert.Equal(t, StateGameOver, room.State())
		}
	}

	_, err = room.NextTurn()
	assert.Error(t, err)
}

func TestCurrentDisplayRound(t *testing.T) {
	room, _, _, turn := startedRoom(t)

	assert.Equal(t, 1, turn.DisplayRound)

	// With two players the display round flips once both have drawn.
	expected := []int{1, 1, 2}
	for _, want := range expected {
		_, err := room.SelectWord(turn.DrawerID, turn.WordOptions[0])
		require.NoError(t, err)
		_, err = room.EndRound()
		require.NoError(t, err)
		turn, err = room.NextTurn()
		require.NoError(t, err)
		assert.Equal(t, want, turn.DisplayRound)
	}
}

func TestKickPlayer(t *testing.T) {
	room, host, guest, _ := startedRoom(t)

	_, err := room.KickPlayer(guest.ID, host.ID)
	assert.Error(t, err, "non-host cannot kick")

	_, err = room.KickPlayer(host.ID, host.ID)
	assert.Error(t, err, "host cannot be kicked")

	kicked, err := room.KickPlayer(host.ID, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, kicked.ID)
	assert.Equal(t, PlayerLeft, guest.ConnectionState)
}

func TestTransferHost(t *testing.T) {
	room, host, guest, _ := startedRoom(t)

	err := room.TransferHost(guest.ID, host.ID)
	assert.Error(t, err, "only host can transfer")

	spectator := NewPlayer("user-spec", "Watcher")
	spectator.IsSpectator = true
	require.NoError(t, room.AddPlayer(spectator))
	err = room.TransferHost(host.ID, spectator.ID)
	assert.Error(t, err, "spectator cannot be host")

	require.NoError(t, room.TransferHost(host.ID, guest.ID))
	assert.Equal(t, guest.ID, room.HostID())
	assert.True(t, guest.IsHost)
	assert.False(t, host.IsHost)
}

func TestRejoin_KeepsScore(t *testing.T) {
	room, _, guest, turn := startedRoom(t)
	word := turn.WordOptions[0]
	_, err := room.SelectWord(turn.DrawerID, word)
	require.NoError(t, err)
	_, _, err = room.SubmitGuess(guest.ID, word)
	require.NoError(t, err)

	room.MarkDisconnected(guest.ID)
	returned := room.Rejoin("user-guest")

	require.NotNil(t, returned)
	assert.Equal(t, guest.ID, returned.ID)
	assert.Equal(t, guest.Score, returned.Score)
	assert.Equal(t, PlayerConnected, returned.ConnectionState)
}

func TestResetToLobby(t *testing.T) {
	room, _, guest, turn := startedRoom(t)
	word := turn.WordOptions[0]
	_, err := room.SelectWord(turn.DrawerID, word)
	require.NoError(t, err)
	_, _, err = room.SubmitGuess(guest.ID, word)
	require.NoError(t, err)

	room.ResetToLobby()

	assert.Equal(t, StateLobby, room.State())
	assert.Zero(t, guest.Score)
	snap := room.Snapshot()
	assert.Nil(t, snap.CurrentRound)
}

func TestSnapshot_NeverLeaksWord(t *testing.T) {
	room, _, _, turn := startedRoom(t)
	word := turn.WordOptions[0]
	_, err := room.SelectWord(turn.DrawerID, word)
	require.NoError(t, err)

	snap := room.Snapshot()
	require.NotNil(t, snap.CurrentRound)
	assert.NotContains(t, snap.CurrentRound.WordHint, word)
	for _, c := range snap.CurrentRound.WordHint {
		assert.Contains(t, "_ ", string(c))
	}
}
