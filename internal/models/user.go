package models

// User represents a platform account known to the game.
// CurrentRoomID is a lookup reference only; the room may have expired.
type User struct {
	ID            string `json:"openid"`
	DisplayName   string `json:"nickname"`
	CurrentRoomID string `json:"current_room,omitempty"`
}

// JoinRoom points the back-reference at roomID.
func (u *User) JoinRoom(roomID string) {
	u.CurrentRoomID = roomID
}

// LeaveRoom clears the back-reference.
func (u *User) LeaveRoom() {
	u.CurrentRoomID = ""
}

func (u *User) InRoom() bool {
	return u.CurrentRoomID != ""
}
