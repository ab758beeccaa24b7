package room

import (
	"github.com/gorilla/websocket"

	"github.com/swipemood/server/internal/repository/chat"
	roomRepo "github.com/swipemood/server/internal/repository/room"
)

// buildRoster derives the ordered roster from the durable room: the admin
// first, then the members. Role is never stored; it is recomputed from
// adminName equality every time.
func buildRoster(rm roomRepo.Room) []RosterEntry {
	roster := make([]RosterEntry, 0, len(rm.MemberNames)+1)
	roster = append(roster, RosterEntry{Name: rm.AdminName, Role: RoleAdmin})
	for _, name := range rm.MemberNames {
		roster = append(roster, RosterEntry{Name: name, Role: RoleMember})
	}

	return roster
}

func buildTracks(rm roomRepo.Room) []Track {
	tracks := make([]Track, 0, len(rm.Tracks))
	for _, track := range rm.Tracks {
		tracks = append(tracks, Track{
			Title:      track.Title,
			Path:       track.Path,
			UploadedBy: track.UploadedBy,
		})
	}

	return tracks
}

func buildChatMessages(messages []chat.Message) []ChatMessage {
	history := make([]ChatMessage, 0, len(messages))
	for _, message := range messages {
		history = append(history, ChatMessage{
			SenderName: message.SenderName,
			Text:       message.Text,
			Timestamp:  message.Timestamp,
		})
	}

	return history
}

func connsExcept(conns []*websocket.Conn, excluded *websocket.Conn) []*websocket.Conn {
	filtered := make([]*websocket.Conn, 0, len(conns))
	for _, conn := range conns {
		if conn != excluded {
			filtered = append(filtered, conn)
		}
	}

	return filtered
}
