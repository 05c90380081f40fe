package entities

import "time"

// InstantTicket is one scratch position in an edition's instant-prize pool.
// Number is the ticket's position in the pool, starting at 1.
type InstantTicket struct {
	TicketID           string
	EditionID          string
	Number             int64
	IsPrized           bool
	PrizeValueCentavos int64
	CreatedAt          time.Time
}
