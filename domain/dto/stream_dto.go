package dto

// CreateStreamRequest carries the fields for a new stream session.
type CreateStreamRequest struct {
	CreatorUserID string   `json:"creator_user_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	AccessType    string   `json:"access_type"`
	PricingType   string   `json:"pricing_type"`
	IsPrivate     bool     `json:"is_private"`
	AllowComments *bool    `json:"allow_comments"`
	Tags          []string `json:"tags"`
	Collaborators []string `json:"collaborators"`
}

// UpdateStreamRequest is a partial update; nil fields are left untouched.
type UpdateStreamRequest struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	Status        *string   `json:"status"`
	PricingType   *string   `json:"pricing_type"`
	IsPrivate     *bool     `json:"is_private"`
	AllowComments *bool     `json:"allow_comments"`
	VodURL        *string   `json:"vod_url"`
	Tags          *[]string `json:"tags"`
}

// CreateStreamResponse is the persisted stream plus the provider endpoints the
// creator needs to start broadcasting.
type CreateStreamResponse struct {
	Stream         interface{} `json:"stream"`
	IngestEndpoint string      `json:"ingest_endpoint"`
	PlaybackURL    string      `json:"playback_url"`
	StreamKey      string      `json:"stream_key"`
}

type TipRequest struct {
	Amount  float64 `json:"amount"`
	Message string  `json:"message"`
	GiftID  string  `json:"gift_id"`
}

type JoinRequest struct {
	Role string `json:"role"`
}

type GoalProgressRequest struct {
	Amount float64 `json:"amount"`
}

type AnnouncementRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type CollaboratorRequest struct {
	UserID string `json:"user_id"`
}

type MediaURLRequest struct {
	URL string `json:"url"`
}

type ToyActionRequest struct {
	Data map[string]interface{} `json:"data"`
}

// UpdateChannelRequest is a partial update of the channel profile mirror.
type UpdateChannelRequest struct {
	Name             *string   `json:"name"`
	Description      *string   `json:"description"`
	ProfileThumbnail *string   `json:"profile_thumbnail"`
	Tags             *[]string `json:"tags"`
	Language         *string   `json:"language"`
	Category         *string   `json:"category"`
}
