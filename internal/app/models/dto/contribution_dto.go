package dto

// ContributionForm is posted by the contributions page
type ContributionForm struct {
	Amount           float64 `form:"amount" binding:"required,gt=0"`
	ContributionType string  `form:"contribution_type" binding:"required,oneof=monthly annual event emergency"`
	PaymentMethod    string  `form:"payment_method" binding:"omitempty,oneof=mpesa bank cash"`
	Notes            string  `form:"notes" binding:"max=500"`
}
