package v1

import "github.com/ianbedrick007/aichatbot/internal/service"

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type LiveMessagesResponse struct {
	Messages []service.LiveMessage `json:"messages"`
}
