package usecase

import (
	"math"
	"sort"
	"strings"

	"go-marketplace-backend/internal/domain"
)

const (
	defaultCurrency = "USD"
	defaultHeadline = "Freelancer"

	ratingCountCap   = 50
	completedJobsCap = 100
)

// scoreFor ranks a worker in [0,1]. Ratings dominate, volume of ratings and
// completed jobs are capped so established workers plateau, and the result
// is damped by availability.
func scoreFor(p domain.WorkerProfile) float64 {
	rating := clamp01(p.RatingAvg / 5)
	volume := math.Min(float64(p.RatingCount), ratingCountCap) / ratingCountCap
	completed := math.Min(float64(p.CompletedJobs), completedJobsCap) / completedJobsCap
	completeness := clamp01(float64(p.ProfileCompleteness) / 100)
	verified := 0.0
	if p.IsVerified {
		verified = 1
	}

	score := 0.35*rating + 0.20*volume + 0.20*completed + 0.15*completeness + 0.10*verified
	return clamp01(score * availabilityFactor(p.AvailabilityStatus))
}

func availabilityFactor(status string) float64 {
	switch status {
	case domain.AvailabilityBusy:
		return 0.7
	case domain.AvailabilityUnavailable:
		return 0.4
	default:
		return 1.0
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// sortByRank orders by score desc, then rating count desc, then user id asc
func sortByRank(profiles []domain.WorkerProfile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		a, b := profiles[i], profiles[j]
		if a.RankScore != b.RankScore {
			return a.RankScore > b.RankScore
		}
		if a.RatingCount != b.RatingCount {
			return a.RatingCount > b.RatingCount
		}
		return a.UserID < b.UserID
	})
}

// applyProfileDefaults backfills fields that older or partial rows may lack
func applyProfileDefaults(p *domain.WorkerProfile) {
	if p.Currency == "" {
		p.Currency = defaultCurrency
	}
	if p.AvailabilityStatus == "" {
		p.AvailabilityStatus = domain.AvailabilityAvailable
	}
	if p.Languages == nil {
		p.Languages = []string{}
	}
	if p.WorkHistory == nil {
		p.WorkHistory = []domain.WorkHistory{}
	}
	if strings.TrimSpace(p.Headline) == "" {
		p.Headline = defaultHeadline
	}
}

// profileCompleteness is the share of filled profile sections, 0-100
func profileCompleteness(p *domain.WorkerProfile, skills, portfolioItems int) int {
	checks := []bool{
		strings.TrimSpace(p.Headline) != "",
		strings.TrimSpace(p.Bio) != "",
		p.HourlyRate > 0,
		strings.TrimSpace(p.Location) != "",
		len(p.Languages) > 0,
		skills > 0,
		portfolioItems > 0,
		p.AvatarURL != nil && *p.AvatarURL != "",
	}
	filled := 0
	for _, ok := range checks {
		if ok {
			filled++
		}
	}
	return int(math.Round(float64(filled) * 100 / float64(len(checks))))
}
