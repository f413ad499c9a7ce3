package model

import "time"

// ChannelProfile mirrors the creator's channel as provisioned by the ingest
// provider. Keyed by creator user id; read-mostly reference data here.
type ChannelProfile struct {
	ID               string    `json:"id" bson:"_id"`
	Name             string    `json:"name" bson:"name"`
	Description      string    `json:"description" bson:"description"`
	ProfileThumbnail string    `json:"profile_thumbnail" bson:"profile_thumbnail"`
	Tags             []string  `json:"tags" bson:"tags"`
	Language         string    `json:"language" bson:"language"`
	Category         string    `json:"category" bson:"category"`
	Followers        int64     `json:"followers" bson:"followers"`
	ChannelARN       string    `json:"channel_arn" bson:"channel_arn"`
	PlaybackURL      string    `json:"playback_url" bson:"playback_url"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

// ChannelInfo is what the provisioning collaborator reports about a broadcast
// channel. Only identifiers and endpoints are consumed here.
type ChannelInfo struct {
	ARN            string `json:"arn"`
	Name           string `json:"name"`
	PlaybackURL    string `json:"playback_url"`
	IngestEndpoint string `json:"ingest_endpoint"`
}

// StreamKeyInfo is a provisioned stream key for a channel.
type StreamKeyInfo struct {
	ARN        string `json:"arn"`
	ChannelARN string `json:"channel_arn"`
	Value      string `json:"value"`
}
