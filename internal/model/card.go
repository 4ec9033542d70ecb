package model

import "time"

// CardStatus is the lifecycle state of a card.
type CardStatus string

const (
	CardActive   CardStatus = "active"
	CardInactive CardStatus = "inactive"
)

// Card is a row in cards.csv. Read-only to the batch engine; used for
// posting validation.
type Card struct {
	Number     string
	AccountID  int
	Status     CardStatus
	Expiration time.Time
	HolderName string
}

// Active reports whether the card can be charged.
func (c Card) Active() bool {
	return c.Status == CardActive
}

// ExpiredAt reports whether the card is past its expiration on the given day.
func (c Card) ExpiredAt(day time.Time) bool {
	return c.Expiration.Before(day)
}
