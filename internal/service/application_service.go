package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"wellwish/internal/domain"
	"wellwish/internal/models"
	"wellwish/pkg/mailer"

	"gorm.io/gorm"
)

var ErrAlreadyApplied = errors.New("already applied for this position")

// ApplicationService coordinates caregiver applications to careseeker
// listings. Applications are modeled as notifications carrying a snapshot of
// the listing, so acceptance and rejection never re-fetch the post.
type ApplicationService struct {
	notifs     NotificationStore
	listings   CareseekerListingStore
	profiles   ProfileStore
	hub        Pusher
	mail       mailer.Mailer
	adminEmail string
}

func NewApplicationService(notifs NotificationStore, listings CareseekerListingStore, profiles ProfileStore, hub Pusher, mail mailer.Mailer, adminEmail string) *ApplicationService {
	return &ApplicationService{
		notifs:     notifs,
		listings:   listings,
		profiles:   profiles,
		hub:        hub,
		mail:       mail,
		adminEmail: adminEmail,
	}
}

// SubmitApplication records a caregiver's interest in a careseeker listing.
// Duplicates are rejected before any insert or email is issued.
func (s *ApplicationService) SubmitApplication(applicantID, listingID uint) (*models.Notification, error) {
	listing, err := s.listings.GetByID(listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if listing.UserID == applicantID {
		return nil, ErrOwnListing
	}
	applied, err := s.notifs.HasApplication(applicantID, listingID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, ErrAlreadyApplied
	}

	applicant, err := s.profiles.GetOrCreateByUserID(applicantID)
	if err != nil {
		return nil, err
	}
	name := applicant.FullName
	if name == "" {
		name = "A caregiver"
	}
	n := &models.Notification{
		SenderID:   applicantID,
		ReceiverID: listing.UserID,
		Type:       domain.NotifApplication,
		Message:    fmt.Sprintf("%s is interested in your care position for %s in %s", name, listing.CareType, listing.Location),
	}
	if err := n.SetMeta(models.ApplicationMeta{
		PostID:   listing.ID,
		CareType: listing.CareType,
		Location: listing.Location,
		Budget:   listing.Budget,
		Duration: listing.Duration,
	}); err != nil {
		return nil, err
	}
	if err := s.notifs.Create(n); err != nil {
		return nil, err
	}
	s.hub.PushToUser(listing.UserID, "notification", n)

	// Fire-and-forget: the application stands even if the relay is down.
	go func() {
		params := map[string]string{
			"to_email":  s.adminEmail,
			"to_name":   listing.Title,
			"from_name": name,
			"message": fmt.Sprintf(
				"%s is interested in the care position for %s in %s (budget $%.2f, %s). Contact: %s.",
				name, listing.CareType, listing.Location, listing.Budget, listing.Duration, applicant.ContactNumber),
		}
		if err := s.mail.Send(context.Background(), params); err != nil {
			log.Printf("[mail] application email failed: %v", err)
		}
	}()
	return n, nil
}

// getApplication loads and authorizes an application notification for the
// listing owner.
func (s *ApplicationService) getApplication(ownerID, notificationID uint) (*models.Notification, error) {
	orig, err := s.notifs.GetByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationGone
		}
		return nil, err
	}
	if orig.Type != domain.NotifApplication {
		return nil, ErrNotificationGone
	}
	if orig.ReceiverID != ownerID {
		return nil, ErrNotAuthorized
	}
	return orig, nil
}

func (s *ApplicationService) outcome(orig *models.Notification, notifType, message string) (*models.Notification, error) {
	out := &models.Notification{
		SenderID:   orig.ReceiverID,
		ReceiverID: orig.SenderID,
		Type:       notifType,
		Message:    message,
	}
	meta, err := orig.ApplicationMeta()
	if err != nil {
		return nil, err
	}
	if err := out.SetMeta(*meta); err != nil {
		return nil, err
	}
	return out, nil
}

// Snapshot returns the application's listing snapshot for the checkout flow.
func (s *ApplicationService) Snapshot(ownerID, notificationID uint) (*models.Notification, *models.ApplicationMeta, error) {
	orig, err := s.getApplication(ownerID, notificationID)
	if err != nil {
		return nil, nil, err
	}
	meta, err := orig.ApplicationMeta()
	if err != nil {
		return nil, nil, err
	}
	return orig, meta, nil
}

// FinalizeAccept runs after the gateway confirms the checkout charge: the
// applicant gets an application_accepted notification and the originating
// application is deleted, atomically.
func (s *ApplicationService) FinalizeAccept(notificationID uint) error {
	orig, err := s.notifs.GetByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Already consumed by an earlier completion.
			return nil
		}
		return err
	}
	out, err := s.outcome(orig, domain.NotifApplicationAccepted,
		"Congratulations! Your application has been accepted.")
	if err != nil {
		return err
	}
	if err := s.notifs.ReplaceApplication(orig.ID, out); err != nil {
		return err
	}
	s.hub.PushToUser(out.ReceiverID, "notification", out)
	return nil
}

// RejectApplication notifies the applicant and removes the originating
// application notification.
func (s *ApplicationService) RejectApplication(ownerID, notificationID uint) error {
	orig, err := s.getApplication(ownerID, notificationID)
	if err != nil {
		return err
	}
	out, err := s.outcome(orig, domain.NotifApplicationRejected,
		"Unfortunately, your application was not selected.")
	if err != nil {
		return err
	}
	if err := s.notifs.ReplaceApplication(orig.ID, out); err != nil {
		return err
	}
	s.hub.PushToUser(out.ReceiverID, "notification", out)
	return nil
}
