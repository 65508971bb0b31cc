package service

import "github.com/ianbedrick007/aichatbot/internal/model"

type RecordMessageCommand struct {
	ConversationID int64
	Direction      model.Direction
	Sender         string
	Text           string
	MediaID        *string
	IsBot          bool
}

type ResolveConversationCommand struct {
	BusinessID   int64
	WaID         string
	CustomerName string
	Platform     model.Platform
}

type VerifySubscriptionCommand struct {
	Mode      string
	Token     string
	Challenge string
}

type ChatCommand struct {
	Message string
}

type ListLiveMessagesQuery struct {
	AfterID int64
	Limit   int
}
