package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
	"go-marketplace-backend/pkg/logger"
	"go-marketplace-backend/pkg/security"
)

const fraudStatsDays = 7

type fraudUsecase struct {
	repo   domain.FraudRepository
	audit  *Auditor
	secLog *security.SecurityLogger
	now    func() time.Time
}

func NewFraudUsecase(repo domain.FraudRepository, audit *Auditor, secLog *security.SecurityLogger) domain.FraudUsecase {
	return &fraudUsecase{repo: repo, audit: audit, secLog: secLog, now: time.Now}
}

// Scan runs every detector over stored data and raises new alerts.
// A (type, subject) pair with an open or investigating alert is skipped.
func (u *fraudUsecase) Scan(ctx context.Context) (*domain.ScanResult, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	now := u.now().UTC()

	windows, err := u.repo.EarningsWindows(ctx, now)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	failures, err := u.repo.LoginFailures(ctx, now.Add(-time.Hour))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	bursts, err := u.repo.FreshAccountReviewBursts(ctx, now.AddDate(0, 0, -freshAccountAgeDays), freshAccountAgeDays*24*time.Hour)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	phones, err := u.repo.SharedPhones(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	rates, err := u.repo.WorkerRates(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var candidates []candidate
	candidates = append(candidates, paymentCandidates(windows)...)
	candidates = append(candidates, loginCandidates(failures)...)
	candidates = append(candidates, reviewCandidates(bursts)...)
	candidates = append(candidates, duplicateCandidates(phones)...)
	candidates = append(candidates, rateCandidates(rates)...)

	result := &domain.ScanResult{Raised: []domain.FraudAlert{}, ByType: map[string]int{}}
	for _, c := range candidates {
		active, err := u.repo.HasActive(ctx, c.alertType, c.subject)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if active {
			result.Skipped++
			continue
		}

		alert := &domain.FraudAlert{
			AlertType:     c.alertType,
			Severity:      c.severity,
			Status:        domain.FraudStatusOpen,
			SubjectUserID: c.subject,
			Description:   c.description,
			EvidenceIDs:   nonNil(c.evidenceIDs),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if raw, err := json.Marshal(c.evidence); err == nil {
			alert.Evidence = raw
		}
		if err := u.repo.Create(ctx, alert); err != nil {
			return nil, apperror.Internal(err)
		}
		if u.secLog != nil {
			u.secLog.LogFraudAlert(ctx, alert.AlertType, alert.Severity, alert.SubjectUserID)
		}
		result.Raised = append(result.Raised, *alert)
		result.ByType[alert.AlertType]++
	}

	logger.Log.Info("fraud scan finished", "raised", len(result.Raised), "skipped", result.Skipped)
	u.audit.Record(ctx, "fraud.scan", "fraud_alert", "scan", map[string]interface{}{
		"raised":  len(result.Raised),
		"skipped": result.Skipped,
	})
	return result, nil
}

func (u *fraudUsecase) ListAlerts(ctx context.Context, filter domain.FraudAlertFilter) (*domain.PaginatedResult[domain.FraudAlert], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	alerts, total, err := u.repo.Fetch(ctx, filter, filter.PageSize, offsetFor(filter.Page, filter.PageSize))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return newPage(alerts, total, filter.Page, filter.PageSize), nil
}

func (u *fraudUsecase) GetAlert(ctx context.Context, id int64) (*domain.FraudAlert, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	alert, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Fraud alert not found")
	}
	return alert, nil
}

// canTransitionAlert: open -> investigating | resolved | dismissed,
// investigating -> resolved | dismissed. Closed states are terminal.
func canTransitionAlert(from, to string) bool {
	switch from {
	case domain.FraudStatusOpen:
		return to == domain.FraudStatusInvestigating || to == domain.FraudStatusResolved || to == domain.FraudStatusDismissed
	case domain.FraudStatusInvestigating:
		return to == domain.FraudStatusResolved || to == domain.FraudStatusDismissed
	}
	return false
}

func (u *fraudUsecase) UpdateAlert(ctx context.Context, id int64, req domain.UpdateFraudAlertRequest) (*domain.FraudAlert, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	alert, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Fraud alert not found")
	}
	if !canTransitionAlert(alert.Status, req.Status) {
		return nil, apperror.BadRequest("Cannot change alert status from " + alert.Status + " to " + req.Status)
	}

	previous := alert.Status
	now := u.now().UTC()
	alert.Status = req.Status
	alert.UpdatedAt = now
	if note := strings.TrimSpace(req.Note); note != "" {
		alert.ResolutionNote = &note
	}
	if req.Status == domain.FraudStatusResolved || req.Status == domain.FraudStatusDismissed {
		actor := contextValue(ctx, domain.KeyUserID)
		alert.ResolvedBy = &actor
		alert.ResolvedAt = &now
	}

	if err := u.repo.UpdateStatus(ctx, alert); err != nil {
		return nil, repoError(err, "Fraud alert not found")
	}
	u.audit.Record(ctx, "fraud.update_status", "fraud_alert", strconv.FormatInt(id, 10), map[string]interface{}{
		"from": previous,
		"to":   req.Status,
	})
	return alert, nil
}

// Stats aggregates alert counts and fills a daily series for the last week
func (u *fraudUsecase) Stats(ctx context.Context) (*domain.FraudStats, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	today := u.now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(fraudStatsDays - 1))

	stats, err := u.repo.Stats(ctx, since)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	stats.Daily = fillDaily(stats.Daily, since, fraudStatsDays)
	if stats.ByStatus == nil {
		stats.ByStatus = map[string]int64{}
	}
	if stats.BySeverity == nil {
		stats.BySeverity = map[string]int64{}
	}
	if stats.ByType == nil {
		stats.ByType = map[string]int64{}
	}
	return stats, nil
}

// fillDaily returns one bucket per day starting at since, zero where missing
func fillDaily(counts []domain.DailyCount, since time.Time, days int) []domain.DailyCount {
	byDate := make(map[string]int64, len(counts))
	for _, c := range counts {
		byDate[c.Date] = c.Count
	}
	out := make([]domain.DailyCount, 0, days)
	for i := 0; i < days; i++ {
		date := since.AddDate(0, 0, i).Format(dateLayout)
		out = append(out, domain.DailyCount{Date: date, Count: byDate[date]})
	}
	return out
}
