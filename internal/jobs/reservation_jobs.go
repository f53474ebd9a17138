package jobs

import (
	"context"
	"fmt"
	"time"

	"islandrides-backend/internal/domain"
	"islandrides-backend/internal/logger"
)

// CompleteReturnedReservations moves active reservations whose dropoff
// date has passed into Completed.
func (jr *JobRunner) CompleteReturnedReservations() {
	jr.runWithRecovery("CompleteReturnedReservations", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format("2006-01-02")

		reservations, err := jr.store.ReservationRepository.ListActivePastDropoff(ctx, today)
		if err != nil {
			logger.Error("Failed to list past-dropoff reservations", "error", err)
			return
		}

		completed := 0
		for i := range reservations {
			rv := &reservations[i]
			if !rv.Status.CanTransitionTo(domain.ReservationStatusCompleted) {
				continue
			}
			if err := jr.store.ReservationRepository.UpdateStatus(ctx, rv.ID, rv.Status, domain.ReservationStatusCompleted); err != nil {
				logger.Error("Failed to complete reservation",
					"reservation_id", rv.ID, "error", err)
				continue
			}
			rv.Status = domain.ReservationStatusCompleted
			completed++

			jr.notifyCompletion(ctx, rv)

			logger.Debug("Completed reservation",
				"reservation_id", rv.ID,
				"user_id", rv.UserID,
				"dropoff_date", rv.DropoffDate)
		}

		logger.Info("Completed returned reservations", "count", completed)
	})
}

// SendPickupReminders emails users whose reservation picks up
// tomorrow.
func (jr *JobRunner) SendPickupReminders() {
	jr.runWithRecovery("SendPickupReminders", func() {
		ctx := context.Background()
		tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

		reservations, err := jr.store.ReservationRepository.ListConfirmedByPickupDate(ctx, tomorrow)
		if err != nil {
			logger.Error("Failed to list reservations for pickup reminders", "error", err)
			return
		}

		sent := 0
		for i := range reservations {
			rv := &reservations[i]
			user, err := jr.store.UserRepository.GetByID(ctx, rv.UserID)
			if err != nil {
				logger.Error("Failed to look up user for pickup reminder",
					"reservation_id", rv.ID, "user_id", rv.UserID, "error", err)
				continue
			}

			vehicleName := "vehicle"
			if vehicle, err := jr.store.VehicleRepository.GetByID(ctx, rv.VehicleID); err == nil {
				vehicleName = vehicle.Make + " " + vehicle.Model
			}

			if err := jr.email.SendPickupReminder(ctx, user.Email, user.FullName(), rv, vehicleName); err != nil {
				logger.Error("Failed to send pickup reminder",
					"reservation_id", rv.ID, "error", err)
				continue
			}
			sent++

			note := &domain.Notification{
				UserID:  rv.UserID,
				Title:   "Pickup Reminder",
				Message: fmt.Sprintf("Your %s is ready to be picked up on %s", vehicleName, rv.PickupDate),
				Attributes: map[string]string{
					"reservation_id": rv.ID,
					"status":         string(rv.Status),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to create pickup reminder notification",
					"reservation_id", rv.ID, "error", err)
			}
		}

		logger.Info("Sent pickup reminders", "count", sent, "pickup_date", tomorrow)
	})
}

func (jr *JobRunner) notifyCompletion(ctx context.Context, rv *domain.Reservation) {
	vehicleName := "vehicle"
	if vehicle, err := jr.store.VehicleRepository.GetByID(ctx, rv.VehicleID); err == nil {
		vehicleName = vehicle.Make + " " + vehicle.Model
	}

	if user, err := jr.store.UserRepository.GetByID(ctx, rv.UserID); err == nil {
		if err := jr.email.SendCompletionNotification(ctx, user.Email, user.FullName(), vehicleName); err != nil {
			logger.Error("Failed to send completion email",
				"reservation_id", rv.ID, "error", err)
		}
	}

	note := &domain.Notification{
		UserID:  rv.UserID,
		Title:   "Rental Completed",
		Message: fmt.Sprintf("Your rental of the %s is complete", vehicleName),
		Attributes: map[string]string{
			"reservation_id": rv.ID,
			"status":         string(rv.Status),
		},
	}
	if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
		logger.Error("Failed to create completion notification",
			"reservation_id", rv.ID, "error", err)
	}
}
