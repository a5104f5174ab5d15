package usecase

import (
	"fmt"
	"math"
	"sort"

	"go-marketplace-backend/internal/domain"
)

// Detector thresholds
const (
	paymentSpikeFactor     = 5.0
	paymentSpikeMinimum    = 1000.0
	loginFailureThreshold  = 10
	freshReviewThreshold   = 3
	freshAccountAgeDays    = 7
	rateOutlierFactor      = 10.0
	rateOutlierMinPeers    = 3
	duplicatePhoneMinUsers = 2
)

// candidate is an alert a rule wants to raise, before deduplication
type candidate struct {
	alertType   string
	severity    string
	subject     string
	description string
	evidence    map[string]interface{}
	evidenceIDs []string
}

// bySteps picks the severity of the highest step the value reaches.
// steps are ordered from most to least severe.
func bySteps(value float64, steps []float64, levels []string, fallback string) string {
	for i, s := range steps {
		if value >= s {
			return levels[i]
		}
	}
	return fallback
}

var severityLevels = []string{domain.SeverityCritical, domain.SeverityHigh, domain.SeverityMedium}

func paymentCandidates(windows []domain.EarningsWindow) []candidate {
	var out []candidate
	for _, w := range windows {
		if w.Last24h <= paymentSpikeMinimum {
			continue
		}
		dailyAvg := w.Prior30Days / 30
		ratio := math.Inf(1)
		if dailyAvg > 0 {
			ratio = w.Last24h / dailyAvg
		}
		if ratio <= paymentSpikeFactor {
			continue
		}
		out = append(out, candidate{
			alertType:   domain.FraudTypePaymentAnomaly,
			severity:    bySteps(ratio, []float64{20, 10, 0}, severityLevels, domain.SeverityMedium),
			subject:     w.WorkerID,
			description: fmt.Sprintf("Earnings of %.2f in the last 24h against a 30-day daily average of %.2f", w.Last24h, dailyAvg),
			evidence: map[string]interface{}{
				"last_24h":      w.Last24h,
				"prior_30_days": w.Prior30Days,
				"daily_average": dailyAvg,
			},
		})
	}
	return out
}

func loginCandidates(counts []domain.LoginFailureCount) []candidate {
	var out []candidate
	for _, c := range counts {
		if c.Failures < loginFailureThreshold || c.UserID == "" {
			continue
		}
		out = append(out, candidate{
			alertType:   domain.FraudTypeLoginAnomaly,
			severity:    bySteps(float64(c.Failures), []float64{50, 25, 0}, severityLevels, domain.SeverityMedium),
			subject:     c.UserID,
			description: fmt.Sprintf("%d failed logins within one hour", c.Failures),
			evidence:    map[string]interface{}{"failures": c.Failures},
			evidenceIDs: c.EventIDs,
		})
	}
	return out
}

func reviewCandidates(bursts []domain.ReviewBurst) []candidate {
	var out []candidate
	for _, b := range bursts {
		if b.FreshReviews < freshReviewThreshold {
			continue
		}
		out = append(out, candidate{
			alertType:   domain.FraudTypeReviewManipulation,
			severity:    bySteps(float64(b.FreshReviews), []float64{10, 6, 0}, severityLevels, domain.SeverityMedium),
			subject:     b.RevieweeID,
			description: fmt.Sprintf("%d five-star reviews from accounts younger than %d days", b.FreshReviews, freshAccountAgeDays),
			evidence: map[string]interface{}{
				"fresh_reviews":  b.FreshReviews,
				"reviewer_count": b.ReviewerCount,
			},
			evidenceIDs: b.ReviewIDs,
		})
	}
	return out
}

// duplicateCandidates flags the newest account of each shared phone.
// UserIDs are ordered oldest first.
func duplicateCandidates(phones []domain.SharedPhone) []candidate {
	var out []candidate
	for _, p := range phones {
		if len(p.UserIDs) < duplicatePhoneMinUsers {
			continue
		}
		out = append(out, candidate{
			alertType:   domain.FraudTypeDuplicateAccount,
			severity:    bySteps(float64(len(p.UserIDs)), []float64{5, 3}, []string{domain.SeverityHigh, domain.SeverityMedium}, domain.SeverityLow),
			subject:     p.UserIDs[len(p.UserIDs)-1],
			description: fmt.Sprintf("%d accounts share the same phone number", len(p.UserIDs)),
			evidence:    map[string]interface{}{"accounts": len(p.UserIDs)},
			evidenceIDs: p.UserIDs,
		})
	}
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func rateCandidates(rates []domain.WorkerRate) []candidate {
	byCategory := make(map[int64][]float64)
	for _, r := range rates {
		byCategory[r.CategoryID] = append(byCategory[r.CategoryID], r.HourlyRate)
	}

	seen := make(map[string]bool)
	var out []candidate
	for _, r := range rates {
		peers := byCategory[r.CategoryID]
		if len(peers) < rateOutlierMinPeers || seen[r.WorkerID] {
			continue
		}
		m := median(peers)
		if m <= 0 || r.HourlyRate <= rateOutlierFactor*m {
			continue
		}
		ratio := r.HourlyRate / m
		seen[r.WorkerID] = true
		out = append(out, candidate{
			alertType:   domain.FraudTypeRateOutlier,
			severity:    bySteps(ratio, []float64{50, 25, 0}, severityLevels, domain.SeverityMedium),
			subject:     r.WorkerID,
			description: fmt.Sprintf("Hourly rate %.2f is %.1fx the category median of %.2f", r.HourlyRate, ratio, m),
			evidence: map[string]interface{}{
				"hourly_rate": r.HourlyRate,
				"median":      m,
				"category_id": r.CategoryID,
				"peers":       len(peers),
			},
		})
	}
	return out
}
