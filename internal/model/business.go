package model

import "time"

// Business is the tenant context. Each WhatsApp phone number id maps to
// exactly one business; the webhook resolves the tenant from the payload's
// metadata.phone_number_id and never mutates it.
type Business struct {
	ID            int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	Name          string    `gorm:"column:name;size:120"`
	PhoneNumberID string    `gorm:"column:phone_number_id;uniqueIndex"`
	Persona       string    `gorm:"column:persona;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}
