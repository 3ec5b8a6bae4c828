package service

import (
	"errors"
	"fmt"

	"wellwish/internal/domain"
	"wellwish/internal/models"

	"gorm.io/gorm"
)

var (
	ErrListingNotFound   = errors.New("listing not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrNotificationGone  = errors.New("notification not found")
	ErrNotAuthorized     = errors.New("not authorized for this action")
	ErrOwnListing        = errors.New("cannot act on your own listing")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// BookingService coordinates the caregiver-booking lifecycle. Every status
// transition is a conditional update paired with exactly one notification
// per counterparty, committed atomically by the store.
type BookingService struct {
	bookings BookingStore
	listings CaregiverListingStore
	notifs   NotificationStore
	users    UserStore
	hub      Pusher
}

func NewBookingService(bookings BookingStore, listings CaregiverListingStore, notifs NotificationStore, users UserStore, hub Pusher) *BookingService {
	return &BookingService{bookings: bookings, listings: listings, notifs: notifs, users: users, hub: hub}
}

func (s *BookingService) senderName(userID uint) string {
	u, err := s.users.GetByID(userID)
	if err != nil || u == nil || u.FullName == "" {
		return "A care seeker"
	}
	return u.FullName
}

// CreateBooking inserts a pending booking priced at the listing's hourly
// rate together with a booking_request notification to the listing owner.
func (s *BookingService) CreateBooking(senderID, listingID uint) (*models.Booking, error) {
	listing, err := s.listings.GetByID(listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if listing.UserID == senderID {
		return nil, ErrOwnListing
	}
	b := &models.Booking{
		CaregiverID: listing.ID,
		SenderID:    senderID,
		Status:      domain.BookingStatusPending,
		Amount:      listing.HourlyRate,
	}
	n := &models.Notification{
		SenderID:   senderID,
		ReceiverID: listing.UserID,
		Type:       domain.NotifBookingRequest,
		Message:    fmt.Sprintf("%s wants to book your %s listing.", s.senderName(senderID), listing.Title),
	}
	if err := s.bookings.CreateWithNotification(b, n); err != nil {
		return nil, err
	}
	s.hub.PushToUser(listing.UserID, "notification", n)
	return b, nil
}

func bookingNotification(sender, receiver uint, notifType, message string, b *models.Booking) (*models.Notification, error) {
	n := &models.Notification{
		SenderID:   sender,
		ReceiverID: receiver,
		Type:       notifType,
		Message:    message,
		BookingID:  &b.ID,
	}
	if err := n.SetMeta(models.BookingMeta{BookingID: b.ID, Amount: b.Amount}); err != nil {
		return nil, err
	}
	return n, nil
}

// RespondToBooking accepts or rejects a pending booking. The caller must be
// the receiver of the originating booking_request notification and the owner
// of the booked listing. On success the originating notification is deleted
// and the counterparty is notified; a lost race returns ErrInvalidTransition.
func (s *BookingService) RespondToBooking(ownerID, notificationID uint, accept bool) (*models.Booking, error) {
	orig, err := s.notifs.GetByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationGone
		}
		return nil, err
	}
	if orig.Type != domain.NotifBookingRequest || orig.BookingID == nil {
		return nil, ErrNotificationGone
	}
	if orig.ReceiverID != ownerID {
		return nil, ErrNotAuthorized
	}
	b, err := s.bookings.GetByID(*orig.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.Caregiver.ID != 0 && b.Caregiver.UserID != ownerID {
		return nil, ErrNotAuthorized
	}

	var notifs []*models.Notification
	next := domain.BookingStatusRejected
	if accept {
		next = domain.BookingStatusAccepted
		pay, err := bookingNotification(ownerID, b.SenderID, domain.NotifPaymentRequired,
			"Your booking has been accepted. Please complete the payment.", b)
		if err != nil {
			return nil, err
		}
		ok, err := bookingNotification(ownerID, b.SenderID, domain.NotifBookingAccepted,
			"Congratulations! Your booking has been accepted. Please discuss the work with the post owner using the chat button.", b)
		if err != nil {
			return nil, err
		}
		notifs = []*models.Notification{pay, ok}
	} else {
		rej, err := bookingNotification(ownerID, b.SenderID, domain.NotifBookingRejected,
			"Unfortunately, your booking request was declined.", b)
		if err != nil {
			return nil, err
		}
		notifs = []*models.Notification{rej}
	}
	if err := s.bookings.Transition(b.ID, domain.BookingStatusPending, next, orig.ID, notifs...); err != nil {
		return nil, err
	}
	b.Status = next
	for _, n := range notifs {
		s.hub.PushToUser(n.ReceiverID, "notification", n)
	}
	s.hub.PushToUser(b.SenderID, "booking_update", b)
	return b, nil
}

// CompletePayment marks an accepted booking paid. Only the payment layer
// calls this, after the gateway has confirmed the charge.
func (s *BookingService) CompletePayment(bookingID uint) (*models.Booking, error) {
	b, err := s.bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	paid, err := bookingNotification(b.Caregiver.UserID, b.SenderID, domain.NotifBookingPaid,
		"Payment received. Your booking is confirmed.", b)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.Transition(b.ID, domain.BookingStatusAccepted, domain.BookingStatusPaid, 0, paid); err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatusPaid
	s.hub.PushToUser(paid.ReceiverID, "notification", paid)
	s.hub.PushToUser(b.SenderID, "booking_update", b)
	s.hub.PushToUser(b.Caregiver.UserID, "booking_update", b)
	return b, nil
}
