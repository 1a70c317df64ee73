package env

import (
	"newsletter-agent/internal/application/port/output"
)

const (
	defaultOpenAIModel    = "gpt-3.5-turbo"
	defaultBrowserbaseURL = "https://api.browserbase.com"
	defaultSkyvernURL     = "https://api.skyvern.com"
	defaultEmailDomain    = "newsletter-automation.com"
	defaultBrowserDriver  = "rod"
	defaultLogLevel       = "info"
)

type Config struct {
	OpenAI      OpenAIConfig
	Browserbase BrowserbaseConfig
	Skyvern     SkyvernConfig
	Browser     BrowserConfig
	EmailDomain string
	LogLevel    string
}

// OpenAIConfig drives the semantic link strategy. An empty APIKey disables it.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type BrowserbaseConfig struct {
	APIKey    string
	BaseURL   string
	ProjectID string
}

type SkyvernConfig struct {
	APIKey  string
	BaseURL string
}

type BrowserConfig struct {
	Driver            string
	Stealth           bool
	CaptureScreenshot bool
}

// Load reads the configuration. Credentials are optional here: backends
// reject calls themselves when theirs is missing.
func Load(src output.ConfigPort) Config {
	return Config{
		OpenAI: OpenAIConfig{
			APIKey:  src.Get("OPENAI_API_KEY"),
			BaseURL: src.Get("OPENAI_BASE_URL"),
			Model:   src.GetWithDefault("OPENAI_MODEL", defaultOpenAIModel),
		},
		Browserbase: BrowserbaseConfig{
			APIKey:    src.Get("BROWSERBASE_API_KEY"),
			BaseURL:   src.GetWithDefault("BROWSERBASE_BASE_URL", defaultBrowserbaseURL),
			ProjectID: src.Get("BROWSERBASE_PROJECT_ID"),
		},
		Skyvern: SkyvernConfig{
			APIKey:  src.Get("SKYVERN_API_KEY"),
			BaseURL: src.GetWithDefault("SKYVERN_BASE_URL", defaultSkyvernURL),
		},
		Browser: BrowserConfig{
			Driver:            src.GetWithDefault("BROWSER_DRIVER", defaultBrowserDriver),
			Stealth:           src.GetBool("BROWSER_STEALTH", false),
			CaptureScreenshot: src.GetBool("CAPTURE_SCREENSHOT", false),
		},
		EmailDomain: src.GetWithDefault("EMAIL_DOMAIN", defaultEmailDomain),
		LogLevel:    src.GetWithDefault("LOG_LEVEL", defaultLogLevel),
	}
}
