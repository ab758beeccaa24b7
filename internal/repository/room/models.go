package room

// Room is the durable room record. MemberNames never contains AdminName; the
// directory enforces that at insertion.
type Room struct {
	Code        string   `json:"code"`
	AdminName   string   `redis:"admin_name" json:"adminName"`
	CreatedAt   int64    `redis:"created_at" json:"createdAt"`
	NowPlaying  string   `redis:"now_playing" json:"nowPlaying"`
	MemberNames []string `json:"memberNames"`
	Tracks      []Track  `json:"tracks"`
}

type Track struct {
	Title      string `json:"title"`
	Path       string `json:"path"`
	UploadedBy string `json:"uploadedBy"`
}
