package model

type ServeRealtimeRequest struct {
	Compress bool `json:"compress"`
}
