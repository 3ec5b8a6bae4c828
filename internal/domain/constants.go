package domain

// Booking lifecycle. The only legal transitions are
// pending -> accepted -> paid and pending -> rejected.
const (
	BookingStatusPending  = "pending"
	BookingStatusAccepted = "accepted"
	BookingStatusRejected = "rejected"
	BookingStatusPaid     = "paid"
)

// Notification types. Workflow transitions write exactly one of these per
// transition; the notification log is the audit trail.
const (
	NotifBookingRequest      = "booking_request"
	NotifBookingAccepted     = "booking_accepted"
	NotifBookingRejected     = "booking_rejected"
	NotifPaymentRequired     = "payment_required"
	NotifBookingPaid         = "booking_paid"
	NotifApplication         = "application"
	NotifApplicationAccepted = "application_accepted"
	NotifApplicationRejected = "application_rejected"
	NotifChatMessage         = "chat_message"
)

// Careseeker listing status.
const (
	ListingStatusActive   = "active"
	ListingStatusInactive = "inactive"
)

// Payment record status.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusExpired   = "EXPIRED"
)

// Payment purposes, stored on the payment record so webhook completion knows
// which workflow to finalize.
const (
	PaymentPurposeBooking     = "booking"
	PaymentPurposeApplication = "application"
)

// MaxImageUploadBytes is the image size limit (5MB), enforced before any
// storage call is attempted.
const MaxImageUploadBytes = 5 << 20
