package usecase

import (
	"context"
	"fmt"
	"sort"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
	"go-marketplace-backend/pkg/validation"
)

var weekdays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

type availabilityUsecase struct {
	repo domain.AvailabilityRepository
}

func NewAvailabilityUsecase(repo domain.AvailabilityRepository) domain.AvailabilityUsecase {
	return &availabilityUsecase{repo: repo}
}

func (u *availabilityUsecase) List(ctx context.Context, workerID string) ([]domain.AvailabilitySlot, error) {
	slots, err := u.repo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return nonNil(slots), nil
}

// Replace swaps the worker's weekly schedule for the given slots
func (u *availabilityUsecase) Replace(ctx context.Context, userID string, req domain.ReplaceAvailabilityRequest) ([]domain.AvailabilitySlot, error) {
	slots := make([]domain.AvailabilitySlot, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, domain.AvailabilitySlot{
			WorkerID:  userID,
			DayOfWeek: s.DayOfWeek,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	if err := validateSlots(slots); err != nil {
		return nil, err
	}
	if err := u.repo.Replace(ctx, userID, slots); err != nil {
		return nil, apperror.Internal(err)
	}
	return slots, nil
}

// validateSlots checks each slot and rejects overlaps on the same day.
// Slots that touch (one ends when the next starts) are allowed.
// The slice is sorted by day and start time.
func validateSlots(slots []domain.AvailabilitySlot) error {
	for _, s := range slots {
		if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
			return apperror.BadRequest("day_of_week must be between 0 and 6")
		}
		if !validation.IsClock(s.StartTime) || !validation.IsClock(s.EndTime) {
			return apperror.BadRequest("start_time and end_time must use HH:MM format")
		}
		// HH:MM strings compare in chronological order
		if s.EndTime <= s.StartTime {
			return apperror.BadRequest("end_time must be after start_time")
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].DayOfWeek != slots[j].DayOfWeek {
			return slots[i].DayOfWeek < slots[j].DayOfWeek
		}
		return slots[i].StartTime < slots[j].StartTime
	})
	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		if prev.DayOfWeek == cur.DayOfWeek && cur.StartTime < prev.EndTime {
			return apperror.BadRequest(fmt.Sprintf("Overlapping slots on %s: %s-%s and %s-%s",
				weekdays[cur.DayOfWeek], prev.StartTime, prev.EndTime, cur.StartTime, cur.EndTime))
		}
	}
	return nil
}
