package models

// Basket is the per-user shopping basket. Exactly one exists per user.
type Basket struct {
	ID     string
	UserID string
}
