package whatsapp

import (
	"errors"
	"regexp"
	"strings"
)

// Payload mirrors the webhook body the Graph API delivers. Only the fields
// the pipeline reads are mapped.
type Payload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

type Value struct {
	MessagingProduct string        `json:"messaging_product"`
	Metadata         Metadata      `json:"metadata"`
	Contacts         []Contact     `json:"contacts"`
	Messages         []Message     `json:"messages"`
	Statuses         []StatusEvent `json:"statuses"`
}

type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

type Contact struct {
	WaID    string  `json:"wa_id"`
	Profile Profile `json:"profile"`
}

type Profile struct {
	Name string `json:"name"`
}

type Message struct {
	From      string `json:"from"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      *Text  `json:"text,omitempty"`
	Image     *Media `json:"image,omitempty"`
}

type Text struct {
	Body string `json:"body"`
}

type Media struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
	Caption  string `json:"caption"`
	SHA256   string `json:"sha256"`
}

type StatusEvent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// MessageKind is the tagged variant the dispatcher branches on instead of
// re-reading the raw type string.
type MessageKind int

const (
	KindText MessageKind = iota
	KindImage
	KindOther
)

// Inbound is the flattened view of the first message in a webhook payload.
type Inbound struct {
	Kind          MessageKind
	PhoneNumberID string
	WaID          string
	CustomerName  string
	Text          string
	MediaID       string
	Caption       string
	MimeType      string
}

var ErrNotAMessage = errors.New("payload carries no message")

// IsStatusUpdate reports whether the payload is a sent/delivered/read
// notification. The provider sends one of these per outbound message; they
// are acknowledged and dropped.
func (p *Payload) IsStatusUpdate() bool {
	v := p.value()
	return v != nil && len(v.Statuses) > 0
}

// IsValidMessage reports whether the payload has the structure of an actual
// inbound message event.
func (p *Payload) IsValidMessage() bool {
	if p.Object == "" {
		return false
	}
	v := p.value()
	return v != nil && len(v.Messages) > 0
}

// FirstMessage extracts and classifies the first message entry.
func (p *Payload) FirstMessage() (*Inbound, error) {
	v := p.value()
	if v == nil || len(v.Messages) == 0 {
		return nil, ErrNotAMessage
	}

	msg := v.Messages[0]

	inbound := &Inbound{
		PhoneNumberID: v.Metadata.PhoneNumberID,
		WaID:          msg.From,
	}

	if len(v.Contacts) > 0 {
		inbound.WaID = v.Contacts[0].WaID
		inbound.CustomerName = v.Contacts[0].Profile.Name
	}
	if inbound.CustomerName == "" {
		inbound.CustomerName = inbound.WaID
	}

	switch msg.Type {
	case "text":
		inbound.Kind = KindText
		if msg.Text != nil {
			inbound.Text = msg.Text.Body
		}
	case "image":
		inbound.Kind = KindImage
		if msg.Image != nil {
			inbound.MediaID = msg.Image.ID
			inbound.Caption = msg.Image.Caption
			inbound.MimeType = msg.Image.MimeType
		}
	default:
		inbound.Kind = KindOther
	}

	return inbound, nil
}

func (p *Payload) value() *Value {
	if len(p.Entry) == 0 || len(p.Entry[0].Changes) == 0 {
		return nil
	}
	return &p.Entry[0].Changes[0].Value
}

var (
	citationRe = regexp.MustCompile(`【.*?】`)
	boldRe     = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// FormatText rewrites model output for WhatsApp: citation brackets are
// dropped and markdown bold becomes WhatsApp bold.
func FormatText(text string) string {
	text = citationRe.ReplaceAllString(text, "")
	text = boldRe.ReplaceAllString(text, "*$1*")
	return strings.TrimSpace(text)
}
