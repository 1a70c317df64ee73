package entity

import (
	"fmt"
	"strings"
)

type Framework string

const (
	FrameworkHeadless    Framework = "headless"
	FrameworkBrowserbase Framework = "browserbase"
	FrameworkSkyvern     Framework = "skyvern"
)

func (f Framework) String() string {
	return string(f)
}

func (f Framework) DisplayName() string {
	switch f {
	case FrameworkHeadless:
		return "Headless Browser"
	case FrameworkBrowserbase:
		return "Browserbase"
	case FrameworkSkyvern:
		return "Skyvern"
	default:
		return string(f)
	}
}

// Frameworks returns every supported framework in canonical order.
func Frameworks() []Framework {
	return []Framework{FrameworkHeadless, FrameworkBrowserbase, FrameworkSkyvern}
}

// ParseFramework maps a user-supplied name onto a framework. Unknown names
// are a configuration error.
func ParseFramework(name string) (Framework, error) {
	switch Framework(strings.ToLower(strings.TrimSpace(name))) {
	case FrameworkHeadless:
		return FrameworkHeadless, nil
	case FrameworkBrowserbase:
		return FrameworkBrowserbase, nil
	case FrameworkSkyvern:
		return FrameworkSkyvern, nil
	default:
		return "", NewError(KindConfiguration, fmt.Sprintf("unknown framework %q", name), nil)
	}
}

// AutomationResult is the uniform outcome of one signup attempt.
type AutomationResult struct {
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	ErrorKind ErrorKind      `json:"errorKind,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

func Succeeded(details map[string]any) AutomationResult {
	return AutomationResult{Success: true, Details: details}
}

// Failure converts err into a failed result. The kind is recovered from the
// error chain; anything untyped is reported as internal.
func Failure(err error, details map[string]any) AutomationResult {
	res := AutomationResult{
		Success:   false,
		ErrorKind: KindInternal,
		Details:   details,
	}
	if err == nil {
		res.Error = "Unknown error occurred"
		return res
	}
	res.Error = err.Error()
	res.ErrorKind = KindOf(err)
	return res
}
