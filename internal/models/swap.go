package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SwapStatus string

const (
	SwapPending  SwapStatus = "pending"
	SwapAccepted SwapStatus = "accepted"
	SwapRejected SwapStatus = "rejected"
)

const (
	MinRating = 1
	MaxRating = 5
)

func (s SwapStatus) Valid() bool {
	switch s {
	case SwapPending, SwapAccepted, SwapRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is allowed.
func (s SwapStatus) IsTerminal() bool {
	return s == SwapAccepted || s == SwapRejected
}

// SwapRequest is a directional proposal from one profile to another. The
// participant names are snapshots taken at creation and are not re-synced.
type SwapRequest struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FromUserID   string             `bson:"from_user_id" json:"from_user_id" validate:"required"`
	ToUserID     string             `bson:"to_user_id" json:"to_user_id" validate:"required,nefield=FromUserID"`
	FromUserName string             `bson:"from_user_name" json:"from_user_name"`
	ToUserName   string             `bson:"to_user_name" json:"to_user_name"`
	Status       SwapStatus         `bson:"status" json:"status"`
	Rating       *int               `bson:"rating,omitempty" json:"rating,omitempty"`
	Feedback     *string            `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

func (s *SwapRequest) BeforeCreate() error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	return nil
}

func (s *SwapRequest) HasRating() bool {
	return s.Rating != nil
}

// Involves reports whether userID is the sender or the recipient.
func (s *SwapRequest) Involves(userID string) bool {
	return s.FromUserID == userID || s.ToUserID == userID
}

// SwapView is a caller's bidirectional view of their swap requests.
type SwapView struct {
	Incoming []*SwapRequest `json:"incoming"`
	Outgoing []*SwapRequest `json:"outgoing"`
}
