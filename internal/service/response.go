package service

import "time"

type LiveMessage struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	IsBot     bool      `json:"is_bot"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
