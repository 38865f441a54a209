// Package messages holds every user-facing reply so wording can be tuned in one place.
package messages

import "fmt"

// Room messages.
const (
	RoomNotFound        = "Room not found, please check the room number"
	RoomAlreadyStarted  = "The game has already started, you cannot join this room"
	RoomAlreadyIn       = "You are already in this room"
	RoomFull            = "The room is full"
	NotOwnerStart       = "Only the room owner can start the game"
	GameAlreadyStarted  = "The game has already started"
	GameEnded           = "The game has ended"
	InvalidPlayerCount  = "The number of players does not fit the game rules"
	NotInRoom           = "You are not in any room"
	NotInCurrentRoom    = "You are not in this room"
	GameNotStarted      = "The game has not started yet, no word to show"
	YouAreEliminated    = "You have been eliminated"
	NotOwnerVote        = "Only the room owner can vote"
	GameNotPlaying      = "The game has not started or is already over"
	PlayerAlreadyGone   = "That player has already been eliminated"
	CiviliansWin        = "Game over! Civilians win, all undercovers were found!"
	UndercoversWin      = "Game over! Undercovers win!"
	OwnerReminder       = "You are the room owner. After the offline round, eliminate a player by sending 't' followed by their number, e.g. t2"
	OwnerStatusReminder = "You are the room owner, send 't+number' to eliminate a player"
	OfflinePlay         = "Describe your word without giving yourself away.\nDescriptions and discussion happen offline; the room owner casts the final vote."
	Unknown             = "Unknown command, send 'help' to see the available commands"
	VoteFormat          = "Invalid vote format, use 't' followed by the player number, e.g. 't1'"
	JoinFormat          = "Please enter a room number, e.g. join 1234"
	InvalidRoomID       = "Room numbers are 4 digits, e.g. join 1234"
	SystemError         = "Sorry, something went wrong. Please try again later"
	RateLimited         = "You are sending messages too fast, please wait a moment"
	Welcome             = "Welcome to Who is the Undercover! Send 'help' to see how to play."
	Instructions        = `Welcome to Who is the Undercover! Commands:
help - show this message
create - create a game room
join <room> - join a room, e.g. join 1234
start - the owner starts the game (at least 3 players)
status - show the room status
word - show your word
t<number> - the owner eliminates a player, e.g. t1
Every reply also shows the current room status and your word.`
)

func RoomCreated(roomID string) string {
	return fmt.Sprintf("Room created! Room number: %s\nOther players send 'join %s' to join\nSend 'start' when everyone is in", roomID, roomID)
}

func Joined(roomID string, count int) string {
	return fmt.Sprintf("Joined room %s! Players in room: %d", roomID, count)
}

func JoinNotification(count int) string {
	return fmt.Sprintf("A new player joined, players in room: %d", count)
}

func InsufficientPlayers(min int) string {
	return fmt.Sprintf("At least %d players are needed to start the game", min)
}

func InvalidIndex(max int) string {
	return fmt.Sprintf("Invalid number, enter a number between 1 and %d", max)
}

func YourWord(word string) string {
	return "Your word: " + word
}

func GameStarted(wordLine string) string {
	if wordLine == "" {
		return "Game started!\n" + OfflinePlay
	}
	return "Game started!\n" + wordLine + "\n" + OfflinePlay
}

func StartNotification(word string) string {
	return fmt.Sprintf("Game started!\nWord: %s\n%s", word, OfflinePlay)
}

func Eliminated(name string) string {
	return fmt.Sprintf("The owner voted: %s is eliminated", name)
}

func RoundNotification(round int) string {
	return fmt.Sprintf("Round %d begins, keep playing offline", round)
}

func DefaultDisplayName(n int) string {
	return fmt.Sprintf("Player%d", n)
}
