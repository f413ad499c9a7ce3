package model

import (
	"strings"
	"time"
)

type StreamStatus string

const (
	StatusOffline    StreamStatus = "offline"
	StatusComingSoon StreamStatus = "coming_soon"
	StatusLive       StreamStatus = "live"
)

// transitions is the lifecycle graph: offline -> coming_soon -> live -> offline.
var transitions = map[StreamStatus][]StreamStatus{
	StatusOffline:    {StatusComingSoon},
	StatusComingSoon: {StatusLive},
	StatusLive:       {StatusOffline},
}

func (s StreamStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s StreamStatus) CanTransitionTo(next StreamStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type AccessType string

const (
	AccessOpenFree   AccessType = "open_free"
	AccessOpenPaid   AccessType = "open_paid"
	AccessInviteFree AccessType = "invite_free"
	AccessInvitePaid AccessType = "invite_paid"
)

func (a AccessType) Valid() bool {
	switch a {
	case AccessOpenFree, AccessOpenPaid, AccessInviteFree, AccessInvitePaid:
		return true
	}
	return false
}

// IsOpen reports whether the access type grants access without an entitlement check.
func (a AccessType) IsOpen() bool {
	return strings.HasPrefix(string(a), "open")
}

type PricingType string

const (
	PricingFree        PricingType = "free"
	PricingPPV         PricingType = "ppv"
	PricingSVOD        PricingType = "svod"
	PricingTokenUnlock PricingType = "token_unlock"
)

// Goal is a funding goal embedded in a Stream. Target and ID are set at creation;
// only Progress and Achieved mutate here.
type Goal struct {
	ID       string  `json:"id" bson:"id"`
	Target   float64 `json:"target" bson:"target"`
	Progress float64 `json:"progress" bson:"progress"`
	Achieved bool    `json:"achieved" bson:"achieved"`
}

// Tip is immutable once appended to a Stream's tip sequence.
type Tip struct {
	UserID    string    `json:"user_id" bson:"user_id"`
	Amount    float64   `json:"amount" bson:"amount"`
	Message   string    `json:"message" bson:"message"`
	GiftID    string    `json:"gift_id,omitempty" bson:"gift_id,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

type Announcement struct {
	Title     string    `json:"title" bson:"title"`
	Body      string    `json:"body" bson:"body"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Stream is one broadcast session. It lives in the "streams" collection and is
// never hard-deleted; ended sessions stay around with status offline for VOD.
type Stream struct {
	ID            string                   `json:"id" bson:"_id"`
	ChannelID     string                   `json:"channel_id" bson:"channel_id"`
	CreatorUserID string                   `json:"creator_user_id" bson:"creator_user_id"`
	Title         string                   `json:"title" bson:"title"`
	Description   string                   `json:"description" bson:"description"`
	ThumbnailURL  string                   `json:"thumbnail_url,omitempty" bson:"thumbnail_url,omitempty"`
	TrailerURL    string                   `json:"trailer_url,omitempty" bson:"trailer_url,omitempty"`
	AccessType    AccessType               `json:"access_type" bson:"access_type"`
	PricingType   PricingType              `json:"pricing_type" bson:"pricing_type"`
	IsPrivate     bool                     `json:"is_private" bson:"is_private"`
	AllowComments bool                     `json:"allow_comments" bson:"allow_comments"`
	Status        StreamStatus             `json:"status" bson:"status"`
	StartTime     *time.Time               `json:"start_time,omitempty" bson:"start_time,omitempty"`
	EndTime       *time.Time               `json:"end_time,omitempty" bson:"end_time,omitempty"`
	VodURL        string                   `json:"vod_url,omitempty" bson:"vod_url,omitempty"`
	StreamKey     string                   `json:"-" bson:"stream_key,omitempty"`
	Goals         []Goal                   `json:"goals" bson:"goals"`
	Games         []map[string]interface{} `json:"games" bson:"games"`
	Gifts         []map[string]interface{} `json:"gifts" bson:"gifts"`
	Tips          []Tip                    `json:"tips" bson:"tips"`
	MultiCamURLs  []string                 `json:"multi_cam_urls" bson:"multi_cam_urls"`
	Announcements []Announcement           `json:"announcements" bson:"announcements"`
	Collaborators []string                 `json:"collaborators" bson:"collaborators"`
	Tags          []string                 `json:"tags" bson:"tags"`
	CreatedAt     time.Time                `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at" bson:"updated_at"`
}

// FindGoal returns the goal with the given id, or nil.
func (s *Stream) FindGoal(goalID string) *Goal {
	for i := range s.Goals {
		if s.Goals[i].ID == goalID {
			return &s.Goals[i]
		}
	}
	return nil
}
