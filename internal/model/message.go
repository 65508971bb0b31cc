package model

import "time"

type Direction string

const (
	DirectionInbound  Direction = "INBOUND"
	DirectionOutbound Direction = "OUTBOUND"
)

// Message rows are append-only; nothing updates them after creation.
type Message struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	ConversationID int64     `gorm:"column:conversation_id;index"`
	Direction      Direction `gorm:"column:direction;size:10"`
	Sender         string    `gorm:"column:sender;size:120"`
	Text           string    `gorm:"column:text;type:text"`
	MediaID        *string   `gorm:"column:media_id;size:120"`
	IsBot          bool      `gorm:"column:is_bot"`
	Timestamp      time.Time `gorm:"column:timestamp;index"`
}
