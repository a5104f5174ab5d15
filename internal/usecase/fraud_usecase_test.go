package usecase_test

import (
	"net/http"
	"testing"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/internal/usecase"
	"go-marketplace-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFraudAlertTransitions(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		wantCode int
	}{
		{"open to investigating", domain.FraudStatusOpen, domain.FraudStatusInvestigating, 0},
		{"open to dismissed", domain.FraudStatusOpen, domain.FraudStatusDismissed, 0},
		{"investigating to resolved", domain.FraudStatusInvestigating, domain.FraudStatusResolved, 0},
		{"resolved is terminal", domain.FraudStatusResolved, domain.FraudStatusInvestigating, http.StatusBadRequest},
		{"dismissed is terminal", domain.FraudStatusDismissed, domain.FraudStatusResolved, http.StatusBadRequest},
		{"investigating cannot repeat", domain.FraudStatusInvestigating, domain.FraudStatusInvestigating, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockFraudRepo)
			repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.FraudAlert{ID: 1, Status: tt.from}, nil)
			repo.On("UpdateStatus", mock.Anything, mock.Anything).Return(nil)

			uc := usecase.NewFraudUsecase(repo, nil, nil)
			alert, err := uc.UpdateAlert(adminCtx("admin-1"), 1, domain.UpdateFraudAlertRequest{Status: tt.to, Note: "checked"})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, apperror.StatusOf(err))
				repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, alert.Status)
			if tt.to == domain.FraudStatusResolved || tt.to == domain.FraudStatusDismissed {
				require.NotNil(t, alert.ResolvedBy)
				assert.Equal(t, "admin-1", *alert.ResolvedBy)
				assert.NotNil(t, alert.ResolvedAt)
			} else {
				assert.Nil(t, alert.ResolvedBy)
			}
		})
	}
}

func TestFraudScan(t *testing.T) {
	repo := new(MockFraudRepo)
	repo.On("EarningsWindows", mock.Anything, mock.Anything).Return([]domain.EarningsWindow{
		{WorkerID: "spiky", Last24h: 5000, Prior30Days: 3000},
		{WorkerID: "steady", Last24h: 1200, Prior30Days: 30000},
	}, nil)
	repo.On("LoginFailures", mock.Anything, mock.Anything).Return([]domain.LoginFailureCount{
		{UserID: "target", Failures: 12, EventIDs: []string{"e1", "e2"}},
		{UserID: "typo", Failures: 3},
	}, nil)
	repo.On("FreshAccountReviewBursts", mock.Anything, mock.Anything, 7*24*time.Hour).Return([]domain.ReviewBurst{}, nil)
	repo.On("SharedPhones", mock.Anything).Return([]domain.SharedPhone{
		{Phone: "+15550100", UserIDs: []string{"old", "new"}},
	}, nil)
	repo.On("WorkerRates", mock.Anything).Return([]domain.WorkerRate{}, nil)

	repo.On("HasActive", mock.Anything, domain.FraudTypePaymentAnomaly, "spiky").Return(false, nil)
	repo.On("HasActive", mock.Anything, domain.FraudTypeLoginAnomaly, "target").Return(false, nil)
	repo.On("HasActive", mock.Anything, domain.FraudTypeDuplicateAccount, "new").Return(true, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FraudAlert")).Return(nil)

	uc := usecase.NewFraudUsecase(repo, nil, nil)
	result, err := uc.Scan(adminCtx("admin-1"))

	require.NoError(t, err)
	assert.Len(t, result.Raised, 2)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.ByType[domain.FraudTypePaymentAnomaly])
	assert.Equal(t, 1, result.ByType[domain.FraudTypeLoginAnomaly])
	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestFraudStatsFillsDailyBuckets(t *testing.T) {
	repo := new(MockFraudRepo)
	today := time.Now().UTC().Format("2006-01-02")
	repo.On("Stats", mock.Anything, mock.Anything).Return(&domain.FraudStats{
		Total: 4,
		Daily: []domain.DailyCount{{Date: today, Count: 4}},
	}, nil)

	uc := usecase.NewFraudUsecase(repo, nil, nil)
	stats, err := uc.Stats(adminCtx("admin-1"))

	require.NoError(t, err)
	require.Len(t, stats.Daily, 7)
	assert.Equal(t, today, stats.Daily[6].Date)
	assert.Equal(t, int64(4), stats.Daily[6].Count)
	assert.Equal(t, int64(0), stats.Daily[0].Count)
	assert.NotNil(t, stats.ByType)
}
