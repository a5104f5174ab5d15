package usecase

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
	"go-marketplace-backend/pkg/logger"
	"go-marketplace-backend/pkg/redis"
)

const recentReviewsLimit = 5

// profileScorer keeps profile completeness and the search cache in sync
// after any write that touches a worker's profile sections.
type profileScorer struct {
	workers   domain.WorkerRepository
	skills    domain.SkillRepository
	portfolio domain.PortfolioRepository
	cache     SearchCache
}

func (s *profileScorer) Refresh(ctx context.Context, userID string) error {
	profile, err := s.workers.GetProfile(ctx, userID)
	if err != nil {
		return repoError(err, "Worker profile not found")
	}
	skills, err := s.skills.CountByWorker(ctx, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	items, err := s.portfolio.CountByWorker(ctx, userID)
	if err != nil {
		return apperror.Internal(err)
	}

	pct := profileCompleteness(profile, skills, items)
	if pct != profile.ProfileCompleteness {
		if err := s.workers.SetCompleteness(ctx, userID, pct); err != nil {
			return apperror.Internal(err)
		}
	}
	s.invalidate(ctx)
	return nil
}

func (s *profileScorer) invalidate(ctx context.Context) {
	invalidateSearchCache(ctx, s.cache)
}

// WorkerDeps groups the repositories the worker usecase reads from
type WorkerDeps struct {
	Workers      domain.WorkerRepository
	Skills       domain.SkillRepository
	Portfolio    domain.PortfolioRepository
	Reviews      domain.ReviewRepository
	Availability domain.AvailabilityRepository
	Cache        SearchCache
}

type workerUsecase struct {
	deps   WorkerDeps
	scorer *profileScorer
}

func NewWorkerUsecase(deps WorkerDeps) domain.WorkerUsecase {
	return &workerUsecase{
		deps:   deps,
		scorer: newProfileScorer(deps),
	}
}

// NewProfileRefresher exposes the completeness scorer to usecases outside
// the worker package area, such as avatar edits on the account itself.
func NewProfileRefresher(deps WorkerDeps) ProfileRefresher {
	return newProfileScorer(deps)
}

func newProfileScorer(deps WorkerDeps) *profileScorer {
	return &profileScorer{
		workers:   deps.Workers,
		skills:    deps.Skills,
		portfolio: deps.Portfolio,
		cache:     deps.Cache,
	}
}

// searchCacheKey renders the normalized filter as a stable key
func searchCacheKey(f domain.WorkerFilter) string {
	v := url.Values{}
	set := func(k, val string) {
		if val = strings.ToLower(strings.TrimSpace(val)); val != "" {
			v.Set(k, val)
		}
	}
	setFloat := func(k string, val *float64) {
		if val != nil {
			v.Set(k, strconv.FormatFloat(*val, 'f', -1, 64))
		}
	}
	set("q", f.Query)
	set("skill", f.Skill)
	if f.CategoryID > 0 {
		v.Set("category", strconv.FormatInt(f.CategoryID, 10))
	}
	set("location", f.Location)
	setFloat("min_rate", f.MinRate)
	setFloat("max_rate", f.MaxRate)
	setFloat("min_rating", f.MinRating)
	set("availability", f.Availability)
	if f.Verified != nil {
		v.Set("verified", strconv.FormatBool(*f.Verified))
	}
	set("sort", f.Sort)
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("size", strconv.Itoa(f.PageSize))
	return "search:" + v.Encode()
}

// Search lists workers matching the filter, ranked by default
func (u *workerUsecase) Search(ctx context.Context, f domain.WorkerFilter) (*domain.PaginatedResult[domain.WorkerProfile], error) {
	f.Page, f.PageSize = normalizePage(f.Page, f.PageSize)
	if f.Sort == "" {
		f.Sort = domain.SortRank
	}
	if f.MinRate != nil && f.MaxRate != nil && *f.MinRate > *f.MaxRate {
		return nil, apperror.BadRequest("min_rate must not exceed max_rate")
	}

	key := searchCacheKey(f)
	if u.deps.Cache != nil {
		var cached domain.PaginatedResult[domain.WorkerProfile]
		err := u.deps.Cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			logger.Log.Warn("worker search cache read failed", "error", err)
		}
	}

	profiles, total, err := u.deps.Workers.Search(ctx, f, f.PageSize, offsetFor(f.Page, f.PageSize))
	if err != nil {
		return nil, apperror.Internal(errors.New("Failed to search workers: " + err.Error()))
	}
	for i := range profiles {
		profiles[i].RankScore = scoreFor(profiles[i])
		applyProfileDefaults(&profiles[i])
	}
	if f.Sort == domain.SortRank {
		sortByRank(profiles)
	}

	result := newPage(profiles, total, f.Page, f.PageSize)
	if u.deps.Cache != nil {
		if err := u.deps.Cache.Set(ctx, key, result); err != nil {
			logger.Log.Warn("worker search cache write failed", "error", err)
		}
	}
	return result, nil
}

// GetPublicProfile returns the profile page of a worker
func (u *workerUsecase) GetPublicProfile(ctx context.Context, workerID string) (*domain.WorkerDetail, error) {
	profile, err := u.loadProfile(ctx, workerID)
	if err != nil {
		return nil, err
	}

	skills, err := u.deps.Skills.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	items, err := u.deps.Portfolio.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	certs, err := u.deps.Portfolio.ListCertificates(ctx, workerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	slots, err := u.deps.Availability.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	reviews, _, err := u.deps.Reviews.Fetch(ctx, domain.ReviewFilter{RevieweeID: workerID}, recentReviewsLimit, 0)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.WorkerDetail{
		Profile:       profile,
		Skills:        nonNil(skills),
		Portfolio:     nonNil(items),
		Certificates:  nonNil(certs),
		Availability:  nonNil(slots),
		RecentReviews: nonNil(reviews),
	}, nil
}

func (u *workerUsecase) GetMyProfile(ctx context.Context, userID string) (*domain.WorkerProfile, error) {
	return u.loadProfile(ctx, userID)
}

func (u *workerUsecase) loadProfile(ctx context.Context, userID string) (*domain.WorkerProfile, error) {
	profile, err := u.deps.Workers.GetProfile(ctx, userID)
	if err != nil {
		return nil, repoError(err, "Worker not found")
	}
	history, err := u.deps.Workers.ListWorkHistory(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	profile.WorkHistory = history
	profile.RankScore = scoreFor(*profile)
	applyProfileDefaults(profile)
	return profile, nil
}

func (u *workerUsecase) UpdateMyProfile(ctx context.Context, userID string, req domain.UpdateWorkerProfileRequest) (*domain.WorkerProfile, error) {
	profile, err := u.deps.Workers.GetProfile(ctx, userID)
	if err != nil {
		return nil, repoError(err, "Worker profile not found")
	}

	if req.Headline != nil {
		profile.Headline = strings.TrimSpace(*req.Headline)
	}
	if req.Bio != nil {
		profile.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, apperror.BadRequest("Hourly rate must not be negative")
		}
		profile.HourlyRate = *req.HourlyRate
	}
	if req.Currency != nil {
		profile.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.Location != nil {
		profile.Location = strings.TrimSpace(*req.Location)
	}
	if req.YearsExperience != nil {
		profile.YearsExperience = *req.YearsExperience
	}
	if req.Languages != nil {
		profile.Languages = dedupeStrings(*req.Languages)
	}
	if req.AvailabilityStatus != nil {
		profile.AvailabilityStatus = *req.AvailabilityStatus
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := u.deps.Workers.UpdateProfile(ctx, profile); err != nil {
		return nil, repoError(err, "Worker profile not found")
	}
	if err := u.scorer.Refresh(ctx, userID); err != nil {
		return nil, err
	}
	return u.loadProfile(ctx, userID)
}

func (u *workerUsecase) workHistoryFromRequest(req domain.WorkHistoryRequest) (*domain.WorkHistory, error) {
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	if end != nil && end.Before(start) {
		return nil, apperror.BadRequest("end_date must not be before start_date")
	}
	return &domain.WorkHistory{
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		StartDate:   start,
		EndDate:     end,
		Description: strings.TrimSpace(req.Description),
	}, nil
}

func (u *workerUsecase) AddWorkHistory(ctx context.Context, userID string, req domain.WorkHistoryRequest) (*domain.WorkHistory, error) {
	item, err := u.workHistoryFromRequest(req)
	if err != nil {
		return nil, err
	}
	item.WorkerID = userID
	if err := u.deps.Workers.CreateWorkHistory(ctx, item); err != nil {
		return nil, apperror.Internal(err)
	}
	u.scorer.invalidate(ctx)
	return item, nil
}

func (u *workerUsecase) ownedWorkHistory(ctx context.Context, userID string, id int64) (*domain.WorkHistory, error) {
	existing, err := u.deps.Workers.GetWorkHistory(ctx, id)
	if err != nil {
		return nil, repoError(err, "Work history entry not found")
	}
	if existing.WorkerID != userID {
		return nil, apperror.Forbidden("You can only modify your own work history")
	}
	return existing, nil
}

func (u *workerUsecase) UpdateWorkHistory(ctx context.Context, userID string, id int64, req domain.WorkHistoryRequest) (*domain.WorkHistory, error) {
	existing, err := u.ownedWorkHistory(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	item, err := u.workHistoryFromRequest(req)
	if err != nil {
		return nil, err
	}
	item.ID = existing.ID
	item.WorkerID = existing.WorkerID
	item.CreatedAt = existing.CreatedAt
	if err := u.deps.Workers.UpdateWorkHistory(ctx, item); err != nil {
		return nil, repoError(err, "Work history entry not found")
	}
	u.scorer.invalidate(ctx)
	return item, nil
}

func (u *workerUsecase) DeleteWorkHistory(ctx context.Context, userID string, id int64) error {
	if _, err := u.ownedWorkHistory(ctx, userID, id); err != nil {
		return err
	}
	if err := u.deps.Workers.DeleteWorkHistory(ctx, id); err != nil {
		return repoError(err, "Work history entry not found")
	}
	u.scorer.invalidate(ctx)
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
