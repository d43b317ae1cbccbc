package service

import "errors"

// Sentinel errors shared across services. The HTTP layer maps these onto
// status codes.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrPlanNotFound       = errors.New("plan not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrNotGroupMember     = errors.New("user is not a member of this group")
	ErrNotGroupCreator    = errors.New("only the group creator may do this")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrPlanExists         = errors.New("group already has a payout plan")
	ErrInvalidTransition  = errors.New("payment is not in a state that allows this")
	ErrNotAnImage         = errors.New("payment slip must be an image file")
	ErrSlipMissing        = errors.New("no payment slip has been uploaded")
	ErrPlanCompleted      = errors.New("plan is already completed")
)
