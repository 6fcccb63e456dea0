package models

import (
	"time"

	"github.com/google/uuid"
)

// ContributionType classifies what a contribution is for
type ContributionType string

const (
	ContributionMonthly   ContributionType = "monthly"
	ContributionAnnual    ContributionType = "annual"
	ContributionEvent     ContributionType = "event"
	ContributionEmergency ContributionType = "emergency"
)

// ContributionTypes lists the types in the order the form offers them
var ContributionTypes = []ContributionType{ContributionMonthly, ContributionAnnual, ContributionEvent, ContributionEmergency}

// PaymentMethod is how the money was sent
type PaymentMethod string

const (
	PaymentMpesa PaymentMethod = "mpesa"
	PaymentBank  PaymentMethod = "bank"
	PaymentCash  PaymentMethod = "cash"
)

// PaymentMethods lists the methods in the order the form offers them
var PaymentMethods = []PaymentMethod{PaymentMpesa, PaymentBank, PaymentCash}

// ContributionStatus tracks confirmation by the treasurer
type ContributionStatus string

const (
	ContributionPending   ContributionStatus = "pending"
	ContributionConfirmed ContributionStatus = "confirmed"
)

// Contribution is one payment a member reports
type Contribution struct {
	ID               uuid.UUID          `json:"id" db:"id"`
	UserID           uuid.UUID          `json:"userId" db:"user_id"`
	Amount           float64            `json:"amount" db:"amount"`
	ContributionType ContributionType   `json:"contributionType" db:"contribution_type"`
	PaymentMethod    PaymentMethod      `json:"paymentMethod" db:"payment_method"`
	Notes            *string            `json:"notes,omitempty" db:"notes"`
	Status           ContributionStatus `json:"status" db:"status"`
	CreatedAt        time.Time          `json:"createdAt" db:"created_at"`
}
