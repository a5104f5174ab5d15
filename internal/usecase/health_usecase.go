package usecase

import (
	"context"
	"time"
)

// HealthCheck is a named dependency check. A nil Check marks the
// dependency as not configured.
type HealthCheck struct {
	Name     string
	Required bool
	Check    func(ctx context.Context) error
}

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
	Status(ctx context.Context) string
}

type healthUsecase struct {
	checks  []HealthCheck
	timeout time.Duration
}

func NewHealthUsecase(checks ...HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks, timeout: 2 * time.Second}
}

// Check pings every dependency. The overall status is "ok" when all
// checks pass, "degraded" when only optional ones fail and "down" when
// a required one fails.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	result := map[string]string{"status": "ok"}
	for _, hc := range u.checks {
		if hc.Check == nil {
			result[hc.Name] = "disabled"
			continue
		}
		cctx, cancel := context.WithTimeout(ctx, u.timeout)
		err := hc.Check(cctx)
		cancel()
		if err == nil {
			result[hc.Name] = "ok"
			continue
		}
		result[hc.Name] = "error"
		if hc.Required {
			result["status"] = "down"
		} else if result["status"] == "ok" {
			result["status"] = "degraded"
		}
	}
	return result
}

func (u *healthUsecase) Status(ctx context.Context) string {
	switch s := u.Check(ctx)["status"]; s {
	case "ok":
		return "healthy"
	default:
		return s
	}
}
