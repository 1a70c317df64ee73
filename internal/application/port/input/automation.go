package input

import (
	"context"

	"newsletter-agent/internal/domain/entity"
)

// Automation attempts a newsletter signup. Implementations never return an
// error: every failure is folded into the result.
type Automation interface {
	Name() string
	SignUp(ctx context.Context, url, email string) entity.AutomationResult
}

type AutomationRegistry interface {
	Register(framework entity.Framework, automation Automation)
	Get(framework entity.Framework) (Automation, bool)
	Frameworks() []entity.Framework
}
