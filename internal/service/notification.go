package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"cabrix/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationTripRequested  NotificationType = "TRIP_REQUESTED"
	NotificationDriverAssigned NotificationType = "DRIVER_ASSIGNED"
	NotificationTripStarted    NotificationType = "TRIP_STARTED"
	NotificationTripCompleted  NotificationType = "TRIP_COMPLETED"
	NotificationTripCancelled  NotificationType = "TRIP_CANCELLED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	CreatedAt   time.Time
}

// NotificationService handles notification delivery. Delivery is
// currently log-based; a push or email client would slot in here.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyTripRequested notifies the company's dispatchers about a new
// pending trip.
func (s *NotificationService) NotifyTripRequested(ctx context.Context, trip *domain.Trip) error {
	return s.send(Notification{
		Type:        NotificationTripRequested,
		RecipientID: trip.CompanyID,
		Title:       "New Trip Request",
		Message:     fmt.Sprintf("Trip from %s to %s at %s", trip.PickupLocation, trip.DropoffLocation, trip.PickupTime.Format(time.RFC3339)),
	})
}

// NotifyDriverAssigned notifies the driver and the passenger that a
// driver was bound to the trip.
func (s *NotificationService) NotifyDriverAssigned(ctx context.Context, trip *domain.Trip) error {
	if err := s.send(Notification{
		Type:        NotificationDriverAssigned,
		RecipientID: trip.DriverID,
		Title:       "Trip Assigned",
		Message:     fmt.Sprintf("Pickup at %s, %s", trip.PickupLocation, trip.PickupTime.Format(time.RFC3339)),
	}); err != nil {
		return err
	}

	return s.send(Notification{
		Type:        NotificationDriverAssigned,
		RecipientID: trip.PassengerID,
		Title:       "Driver Assigned",
		Message:     "A driver has been assigned to your trip",
	})
}

// NotifyStatusChanged notifies the passenger about a lifecycle change.
func (s *NotificationService) NotifyStatusChanged(ctx context.Context, trip *domain.Trip) error {
	var typ NotificationType
	var title string

	switch trip.Status {
	case domain.TripStatusInProgress:
		typ, title = NotificationTripStarted, "Trip Started"
	case domain.TripStatusCompleted:
		typ, title = NotificationTripCompleted, "Trip Completed"
	case domain.TripStatusCancelled:
		typ, title = NotificationTripCancelled, "Trip Cancelled"
	default:
		return nil
	}

	return s.send(Notification{
		Type:        typ,
		RecipientID: trip.PassengerID,
		Title:       title,
		Message:     fmt.Sprintf("Trip %s is now %s", trip.ID, trip.Status),
	})
}

func (s *NotificationService) send(n Notification) error {
	n.CreatedAt = time.Now()
	log.Printf("[NOTIFICATION] type=%s recipient=%s title=%q message=%q", n.Type, n.RecipientID, n.Title, n.Message)
	return nil
}
