package room

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type RosterEntry struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type ChatMessage struct {
	SenderName string `json:"senderName"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
}

type Track struct {
	Title      string `json:"title"`
	Path       string `json:"path"`
	UploadedBy string `json:"uploadedBy"`
}

type Room struct {
	RoomCode   string        `json:"roomCode"`
	Roster     []RosterEntry `json:"users"`
	Tracks     []Track       `json:"tracks"`
	NowPlaying string        `json:"nowPlaying,omitempty"`
}
