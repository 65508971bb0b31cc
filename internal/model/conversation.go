package model

import "time"

type Platform string

const (
	PlatformWhatsApp Platform = "whatsapp"
	PlatformWeb      Platform = "web"
)

// Conversation is the ordered message history for one remote contact.
// Identity is (business, wa_id); it is created on the first inbound message
// from that contact and never merged or split.
type Conversation struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	BusinessID   int64     `gorm:"column:business_id;index:idx_business_waid,unique"`
	WaID         string    `gorm:"column:wa_id;size:120;index:idx_business_waid,unique"`
	CustomerName string    `gorm:"column:customer_name;size:120"`
	Platform     Platform  `gorm:"column:platform;size:20"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}
