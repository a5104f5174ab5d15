package usecase

import (
	"net/http"
	"testing"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(day int, start, end string) domain.AvailabilitySlot {
	return domain.AvailabilitySlot{DayOfWeek: day, StartTime: start, EndTime: end}
}

func TestValidateSlots(t *testing.T) {
	tests := []struct {
		name    string
		slots   []domain.AvailabilitySlot
		wantErr bool
	}{
		{"empty set", nil, false},
		{"touching slots", []domain.AvailabilitySlot{slot(1, "09:00", "12:00"), slot(1, "12:00", "17:00")}, false},
		{"same times on different days", []domain.AvailabilitySlot{slot(1, "09:00", "12:00"), slot(2, "09:00", "12:00")}, false},
		{"overlap", []domain.AvailabilitySlot{slot(3, "13:00", "15:00"), slot(3, "09:00", "13:30")}, true},
		{"end before start", []domain.AvailabilitySlot{slot(0, "18:00", "08:00")}, true},
		{"zero length", []domain.AvailabilitySlot{slot(0, "08:00", "08:00")}, true},
		{"bad clock", []domain.AvailabilitySlot{slot(0, "8am", "10:00")}, true},
		{"bad day", []domain.AvailabilitySlot{slot(7, "08:00", "10:00")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSlots(tt.slots)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateSlotsSortsByDayAndStart(t *testing.T) {
	slots := []domain.AvailabilitySlot{slot(2, "10:00", "11:00"), slot(1, "14:00", "15:00"), slot(1, "08:00", "09:00")}
	require.NoError(t, validateSlots(slots))

	assert.Equal(t, "08:00", slots[0].StartTime)
	assert.Equal(t, "14:00", slots[1].StartTime)
	assert.Equal(t, 2, slots[2].DayOfWeek)
}
