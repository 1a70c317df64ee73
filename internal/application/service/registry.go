package service

import (
	"slices"

	"newsletter-agent/internal/application/port/input"
	"newsletter-agent/internal/domain/entity"
)

var _ input.AutomationRegistry = (*AutomationRegistryImpl)(nil)

// AutomationRegistryImpl is filled once at startup and read concurrently
// afterwards.
type AutomationRegistryImpl struct {
	automations map[entity.Framework]input.Automation
}

func NewAutomationRegistry() *AutomationRegistryImpl {
	return &AutomationRegistryImpl{
		automations: make(map[entity.Framework]input.Automation),
	}
}

func (r *AutomationRegistryImpl) Register(framework entity.Framework, automation input.Automation) {
	r.automations[framework] = automation
}

func (r *AutomationRegistryImpl) Get(framework entity.Framework) (input.Automation, bool) {
	automation, ok := r.automations[framework]
	return automation, ok
}

// Frameworks lists the registered frameworks in their canonical order.
func (r *AutomationRegistryImpl) Frameworks() []entity.Framework {
	result := make([]entity.Framework, 0, len(r.automations))
	for _, f := range entity.Frameworks() {
		if _, ok := r.automations[f]; ok {
			result = append(result, f)
		}
	}
	for f := range r.automations {
		if !slices.Contains(result, f) {
			result = append(result, f)
		}
	}
	return result
}
