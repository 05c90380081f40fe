package errors

import "errors"

var (
	ErrCostPlanNotFound      = errors.New("cost plan not found")
	ErrCostPlanAlreadyExists = errors.New("cost plan already exists")
	ErrInvalidCostPlan       = errors.New("cost plan values must be non-negative")
	ErrEditionNotFound       = errors.New("lottery edition not found")
)
