package errors

import "errors"

var (
	ErrEditionNotFound       = errors.New("lottery edition not found")
	ErrAffiliateNotFound     = errors.New("affiliate not found")
	ErrInvalidCommissionRate = errors.New("commission rate must be between 0 and 100")
	ErrUpstreamFetch         = errors.New("failed to fetch affiliate data")
	ErrNoAffiliateIDs        = errors.New("at least one affiliate id is required")
)
