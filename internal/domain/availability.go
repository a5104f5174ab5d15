package domain

import "context"

type AvailabilitySlot struct {
	ID        int64  `json:"id"`
	WorkerID  string `json:"worker_id"`
	DayOfWeek int    `json:"day_of_week"` // 0 = Sunday
	StartTime string `json:"start_time"`  // HH:MM
	EndTime   string `json:"end_time"`
}

type AvailabilitySlotRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"gte=0,lte=6"`
	StartTime string `json:"start_time" binding:"required,clock"`
	EndTime   string `json:"end_time" binding:"required,clock"`
}

type ReplaceAvailabilityRequest struct {
	Slots []AvailabilitySlotRequest `json:"slots" binding:"max=50,dive"`
}

type AvailabilityRepository interface {
	ListByWorker(ctx context.Context, workerID string) ([]AvailabilitySlot, error)
	// Replace swaps the worker's whole slot set in one transaction
	Replace(ctx context.Context, workerID string, slots []AvailabilitySlot) error
}

type AvailabilityUsecase interface {
	List(ctx context.Context, workerID string) ([]AvailabilitySlot, error)
	Replace(ctx context.Context, userID string, req ReplaceAvailabilityRequest) ([]AvailabilitySlot, error)
}
