package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/blueparser/constants"
)

// Drawing is a persisted summary of one parsed document.
type Drawing struct {
	ID            uuid.UUID
	Source        string
	DrawingNumber *string
	Title         *string
	DrawingType   constants.DrawingType
	Discipline    constants.Discipline
	Scale         *string
	Date          *string
	Confidence    float64
	IsValid       bool
	CreatedAt     time.Time
	// Result is the ParseResult JSON as stored.
	Result []byte
}
