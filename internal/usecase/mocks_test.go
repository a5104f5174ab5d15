package usecase_test

import (
	"context"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/auth"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.WorkerProfile) error {
	return m.Called(ctx, user, profile).Error(0)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}
func (m *MockUserRepo) SetTOTP(ctx context.Context, id string, secret *string, enabled bool) error {
	return m.Called(ctx, id, secret, enabled).Error(0)
}

type MockWorkerRepo struct {
	mock.Mock
}

func (m *MockWorkerRepo) CreateProfile(ctx context.Context, profile *domain.WorkerProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockWorkerRepo) GetProfile(ctx context.Context, userID string) (*domain.WorkerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkerProfile), args.Error(1)
}
func (m *MockWorkerRepo) UpdateProfile(ctx context.Context, profile *domain.WorkerProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockWorkerRepo) Search(ctx context.Context, filter domain.WorkerFilter, limit, offset int) ([]domain.WorkerProfile, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.WorkerProfile), args.Get(1).(int64), args.Error(2)
}
func (m *MockWorkerRepo) SetCompleteness(ctx context.Context, userID string, completeness int) error {
	return m.Called(ctx, userID, completeness).Error(0)
}
func (m *MockWorkerRepo) SetVerified(ctx context.Context, userID string, verified bool) error {
	return m.Called(ctx, userID, verified).Error(0)
}
func (m *MockWorkerRepo) RecomputeRating(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockWorkerRepo) IncrementCompletedJobs(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockWorkerRepo) ListWorkHistory(ctx context.Context, workerID string) ([]domain.WorkHistory, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkHistory), args.Error(1)
}
func (m *MockWorkerRepo) GetWorkHistory(ctx context.Context, id int64) (*domain.WorkHistory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkHistory), args.Error(1)
}
func (m *MockWorkerRepo) CreateWorkHistory(ctx context.Context, item *domain.WorkHistory) error {
	return m.Called(ctx, item).Error(0)
}
func (m *MockWorkerRepo) UpdateWorkHistory(ctx context.Context, item *domain.WorkHistory) error {
	return m.Called(ctx, item).Error(0)
}
func (m *MockWorkerRepo) DeleteWorkHistory(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockJobRepo) SetStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockJobRepo) Complete(ctx context.Context, id int64, completedAt time.Time, earning *domain.Earning) error {
	return m.Called(ctx, id, completedAt, earning).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByWorkerID(ctx context.Context, workerID string) ([]domain.Application, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) CheckExists(ctx context.Context, jobID int64, workerID string) (bool, error) {
	args := m.Called(ctx, jobID, workerID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockApplicationRepo) Accept(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	return m.Called(ctx, review).Error(0)
}
func (m *MockReviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
func (m *MockReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	return m.Called(ctx, review).Error(0)
}
func (m *MockReviewRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockReviewRepo) Hide(ctx context.Context, id int64, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}
func (m *MockReviewRepo) Fetch(ctx context.Context, filter domain.ReviewFilter, limit, offset int) ([]domain.Review, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Get(1).(int64), args.Error(2)
}

type MockAvailabilityRepo struct {
	mock.Mock
}

func (m *MockAvailabilityRepo) ListByWorker(ctx context.Context, workerID string) ([]domain.AvailabilitySlot, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AvailabilitySlot), args.Error(1)
}
func (m *MockAvailabilityRepo) Replace(ctx context.Context, workerID string, slots []domain.AvailabilitySlot) error {
	return m.Called(ctx, workerID, slots).Error(0)
}

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminStats), args.Error(1)
}
func (m *MockAdminRepo) ListUsers(ctx context.Context, filter domain.AdminUserFilter, limit, offset int) ([]domain.AdminUser, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.AdminUser), args.Get(1).(int64), args.Error(2)
}
func (m *MockAdminRepo) GetUser(ctx context.Context, userID string) (*domain.AdminUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminUser), args.Error(1)
}
func (m *MockAdminRepo) DisableUser(ctx context.Context, userID string, disable bool) error {
	return m.Called(ctx, userID, disable).Error(0)
}
func (m *MockAdminRepo) UpdateRole(ctx context.Context, userID, role string) error {
	return m.Called(ctx, userID, role).Error(0)
}
func (m *MockAdminRepo) DeleteUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockAdminRepo) CancelJob(ctx context.Context, jobID int64) error {
	return m.Called(ctx, jobID).Error(0)
}
func (m *MockAdminRepo) ListConfig(ctx context.Context) ([]domain.PlatformConfigEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlatformConfigEntry), args.Error(1)
}
func (m *MockAdminRepo) SetConfig(ctx context.Context, key, value, updatedBy string) (*domain.PlatformConfigEntry, error) {
	args := m.Called(ctx, key, value, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlatformConfigEntry), args.Error(1)
}
func (m *MockAdminRepo) RecordAction(ctx context.Context, action *domain.AdminAction) error {
	return m.Called(ctx, action).Error(0)
}
func (m *MockAdminRepo) ListActions(ctx context.Context, filter domain.AdminActionFilter, limit, offset int) ([]domain.AdminAction, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.AdminAction), args.Get(1).(int64), args.Error(2)
}

type MockFraudRepo struct {
	mock.Mock
}

func (m *MockFraudRepo) Create(ctx context.Context, alert *domain.FraudAlert) error {
	return m.Called(ctx, alert).Error(0)
}
func (m *MockFraudRepo) GetByID(ctx context.Context, id int64) (*domain.FraudAlert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FraudAlert), args.Error(1)
}
func (m *MockFraudRepo) Fetch(ctx context.Context, filter domain.FraudAlertFilter, limit, offset int) ([]domain.FraudAlert, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.FraudAlert), args.Get(1).(int64), args.Error(2)
}
func (m *MockFraudRepo) UpdateStatus(ctx context.Context, alert *domain.FraudAlert) error {
	return m.Called(ctx, alert).Error(0)
}
func (m *MockFraudRepo) HasActive(ctx context.Context, alertType, subjectUserID string) (bool, error) {
	args := m.Called(ctx, alertType, subjectUserID)
	return args.Bool(0), args.Error(1)
}
func (m *MockFraudRepo) Stats(ctx context.Context, since time.Time) (*domain.FraudStats, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FraudStats), args.Error(1)
}
func (m *MockFraudRepo) ListAll(ctx context.Context) ([]domain.FraudAlert, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FraudAlert), args.Error(1)
}
func (m *MockFraudRepo) EarningsWindows(ctx context.Context, now time.Time) ([]domain.EarningsWindow, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.EarningsWindow), args.Error(1)
}
func (m *MockFraudRepo) LoginFailures(ctx context.Context, since time.Time) ([]domain.LoginFailureCount, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]domain.LoginFailureCount), args.Error(1)
}
func (m *MockFraudRepo) FreshAccountReviewBursts(ctx context.Context, since time.Time, accountAge time.Duration) ([]domain.ReviewBurst, error) {
	args := m.Called(ctx, since, accountAge)
	return args.Get(0).([]domain.ReviewBurst), args.Error(1)
}
func (m *MockFraudRepo) SharedPhones(ctx context.Context) ([]domain.SharedPhone, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SharedPhone), args.Error(1)
}
func (m *MockFraudRepo) WorkerRates(ctx context.Context) ([]domain.WorkerRate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.WorkerRate), args.Error(1)
}

type MockSkillRepo struct {
	mock.Mock
}

func (m *MockSkillRepo) ListCategories(ctx context.Context) ([]domain.SkillCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SkillCategory), args.Error(1)
}
func (m *MockSkillRepo) GetCategory(ctx context.Context, id int64) (*domain.SkillCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SkillCategory), args.Error(1)
}
func (m *MockSkillRepo) CreateCategory(ctx context.Context, category *domain.SkillCategory) error {
	return m.Called(ctx, category).Error(0)
}
func (m *MockSkillRepo) UpdateCategory(ctx context.Context, category *domain.SkillCategory) error {
	return m.Called(ctx, category).Error(0)
}
func (m *MockSkillRepo) DeleteCategory(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockSkillRepo) ListByWorker(ctx context.Context, workerID string) ([]domain.WorkerSkill, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkerSkill), args.Error(1)
}
func (m *MockSkillRepo) GetSkill(ctx context.Context, id int64) (*domain.WorkerSkill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkerSkill), args.Error(1)
}
func (m *MockSkillRepo) CreateSkill(ctx context.Context, skill *domain.WorkerSkill) error {
	return m.Called(ctx, skill).Error(0)
}
func (m *MockSkillRepo) UpdateSkill(ctx context.Context, skill *domain.WorkerSkill) error {
	return m.Called(ctx, skill).Error(0)
}
func (m *MockSkillRepo) DeleteSkill(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockSkillRepo) RecordAssessment(ctx context.Context, id int64, score int, verified bool) error {
	return m.Called(ctx, id, score, verified).Error(0)
}
func (m *MockSkillRepo) CountByWorker(ctx context.Context, workerID string) (int, error) {
	args := m.Called(ctx, workerID)
	return args.Int(0), args.Error(1)
}

type MockPortfolioRepo struct {
	mock.Mock
}

func (m *MockPortfolioRepo) ListByWorker(ctx context.Context, workerID string) ([]domain.PortfolioItem, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PortfolioItem), args.Error(1)
}
func (m *MockPortfolioRepo) GetByID(ctx context.Context, id int64) (*domain.PortfolioItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PortfolioItem), args.Error(1)
}
func (m *MockPortfolioRepo) Create(ctx context.Context, item *domain.PortfolioItem) error {
	return m.Called(ctx, item).Error(0)
}
func (m *MockPortfolioRepo) Update(ctx context.Context, item *domain.PortfolioItem) error {
	return m.Called(ctx, item).Error(0)
}
func (m *MockPortfolioRepo) SetMedia(ctx context.Context, id int64, mediaURL, thumbnailURL *string) error {
	return m.Called(ctx, id, mediaURL, thumbnailURL).Error(0)
}
func (m *MockPortfolioRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockPortfolioRepo) CountByWorker(ctx context.Context, workerID string) (int, error) {
	args := m.Called(ctx, workerID)
	return args.Int(0), args.Error(1)
}
func (m *MockPortfolioRepo) ListCertificates(ctx context.Context, workerID string) ([]domain.Certificate, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Certificate), args.Error(1)
}
func (m *MockPortfolioRepo) GetCertificate(ctx context.Context, id int64) (*domain.Certificate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}
func (m *MockPortfolioRepo) CreateCertificate(ctx context.Context, cert *domain.Certificate) error {
	return m.Called(ctx, cert).Error(0)
}
func (m *MockPortfolioRepo) UpdateCertificate(ctx context.Context, cert *domain.Certificate) error {
	return m.Called(ctx, cert).Error(0)
}
func (m *MockPortfolioRepo) DeleteCertificate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.Document) error {
	return m.Called(ctx, doc).Error(0)
}
func (m *MockDocumentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentRepo) ListByWorker(ctx context.Context, workerID string) ([]domain.Document, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}
func (m *MockDocumentRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]domain.Document, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Get(1).(int64), args.Error(2)
}
func (m *MockDocumentRepo) Review(ctx context.Context, id, status, reviewerID string, reason *string) error {
	return m.Called(ctx, id, status, reviewerID, reason).Error(0)
}

type MockBookmarkRepo struct {
	mock.Mock
}

func (m *MockBookmarkRepo) Create(ctx context.Context, bookmark *domain.Bookmark) error {
	return m.Called(ctx, bookmark).Error(0)
}
func (m *MockBookmarkRepo) Delete(ctx context.Context, hirerID, workerID string) error {
	return m.Called(ctx, hirerID, workerID).Error(0)
}
func (m *MockBookmarkRepo) ListByHirer(ctx context.Context, hirerID string, limit, offset int) ([]domain.Bookmark, int64, error) {
	args := m.Called(ctx, hirerID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Bookmark), args.Get(1).(int64), args.Error(2)
}

type MockEarningRepo struct {
	mock.Mock
}

func (m *MockEarningRepo) Create(ctx context.Context, earning *domain.Earning) error {
	return m.Called(ctx, earning).Error(0)
}
func (m *MockEarningRepo) GetByID(ctx context.Context, id int64) (*domain.Earning, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Earning), args.Error(1)
}
func (m *MockEarningRepo) ListByWorker(ctx context.Context, workerID string, limit, offset int) ([]domain.Earning, int64, error) {
	args := m.Called(ctx, workerID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Earning), args.Get(1).(int64), args.Error(2)
}
func (m *MockEarningRepo) Summary(ctx context.Context, workerID string, since time.Time) (*domain.EarningsSummary, error) {
	args := m.Called(ctx, workerID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EarningsSummary), args.Error(1)
}
func (m *MockEarningRepo) MarkPaid(ctx context.Context, id int64, paidAt time.Time) error {
	return m.Called(ctx, id, paidAt).Error(0)
}

// Mock services
type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) Issue(userID, email, role string) (string, time.Time, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokens) Parse(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

type MockGuard struct {
	mock.Mock
}

func (m *MockGuard) IsBlocked(ctx context.Context, email, ip string) (bool, error) {
	args := m.Called(ctx, email, ip)
	return args.Bool(0), args.Error(1)
}
func (m *MockGuard) RecordFailure(ctx context.Context, email, ip string) (bool, error) {
	args := m.Called(ctx, email, ip)
	return args.Bool(0), args.Error(1)
}
func (m *MockGuard) Clear(ctx context.Context, email, ip string) error {
	return m.Called(ctx, email, ip).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) error {
	return m.Called(ctx, key, dest).Error(0)
}
func (m *MockCache) Set(ctx context.Context, key string, value interface{}) error {
	return m.Called(ctx, key, value).Error(0)
}
func (m *MockCache) InvalidatePrefix(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}
func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func adminCtx(id string) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, id)
	return context.WithValue(ctx, domain.KeyUserRole, domain.RoleAdmin)
}
