package room

type CreateRoomParams struct {
	Code      string
	AdminName string
	CreatedAt int64
}

type AddMemberParams struct {
	Code       string
	MemberName string
}

type AddTrackParams struct {
	Code       string
	Title      string
	Path       string
	UploadedBy string
}

type SetNowPlayingParams struct {
	Code    string
	Locator string
}
