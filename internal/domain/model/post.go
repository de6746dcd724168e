package model

// PayloadKind discriminates the content stored in a Payload.
type PayloadKind string

const (
	PayloadNone     PayloadKind = ""
	PayloadText     PayloadKind = "text"
	PayloadPhoto    PayloadKind = "photo"
	PayloadDocument PayloadKind = "document"
)

// Payload is a tagged union over the three content kinds a post can carry.
// Exactly one variant is active: Text holds the body for PayloadText, FileID
// holds the Telegram file reference for PayloadPhoto and PayloadDocument.
// The zero value (PayloadNone) means "no payload".
type Payload struct {
	Kind   PayloadKind `json:"kind"`
	Text   string      `json:"text,omitempty"`
	FileID string      `json:"file_id,omitempty"`
}

func TextPayload(body string) Payload      { return Payload{Kind: PayloadText, Text: body} }
func PhotoPayload(fileID string) Payload   { return Payload{Kind: PayloadPhoto, FileID: fileID} }
func DocumentPayload(fileID string) Payload {
	return Payload{Kind: PayloadDocument, FileID: fileID}
}

func (p Payload) IsZero() bool { return p.Kind == PayloadNone }

// RequiredChannel is one membership requirement of a gated post.
// Handle is stored without the leading "@".
type RequiredChannel struct {
	Name   string `json:"name"`
	Handle string `json:"handle"`
}

// Post is a unit of gated content. Main is delivered once the user is a
// member of every required channel; Intro (optional) is shown before the
// gate is satisfied.
type Post struct {
	ID               int64
	Title            string
	Description      string
	Main             Payload
	Intro            Payload
	RequiredChannels []RequiredChannel
}

func (p *Post) IsZero() bool { return p == nil || p.ID == 0 }

// Gated reports whether the post has any membership requirement.
// A post with no required channels is immediately deliverable.
func (p *Post) Gated() bool { return p != nil && len(p.RequiredChannels) > 0 }
