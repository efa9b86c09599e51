package types

import "time"

// BrowserUserAgent identifies requests as a desktop browser so publisher sites
// do not reject them as bots.
const BrowserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Default configuration values.
const (
	DefaultFetchTimeout   = 10 * time.Second
	DefaultFetchDelay     = 1 * time.Second
	DefaultMaxDocuments   = 10
	DefaultMaxBodyBytes   = 10 << 20
	DefaultMaxRedirects   = 10
	DefaultStructuredText = 5000
	DefaultGenericText    = 3000
	DefaultPromptAbstract = 300
	DefaultPromptPreview  = 400
	DefaultMaxTokens      = 8192
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout bounds a single document fetch, including reading the body.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every fetch.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes" mapstructure:"max_body_bytes"`

	// MaxRedirects limits redirect hops per request.
	MaxRedirects int `json:"max_redirects" yaml:"max_redirects" mapstructure:"max_redirects"`
}

// Limits holds the character budgets applied while extracting content and
// rendering the prompt. All values count Unicode code points.
type Limits struct {
	// StructuredText caps FullText from the structured-source strategy.
	StructuredText int `json:"structured_text" yaml:"structured_text" mapstructure:"structured_text"`

	// GenericText caps FullText from the generic strategy.
	GenericText int `json:"generic_text" yaml:"generic_text" mapstructure:"generic_text"`

	// PromptAbstract caps each abstract in the rendered prompt.
	PromptAbstract int `json:"prompt_abstract" yaml:"prompt_abstract" mapstructure:"prompt_abstract"`

	// PromptPreview caps each content preview in the rendered prompt.
	PromptPreview int `json:"prompt_preview" yaml:"prompt_preview" mapstructure:"prompt_preview"`
}

// BackendProvider selects the generation backend implementation.
type BackendProvider string

const (
	ProviderGemini BackendProvider = "gemini"
	ProviderClaude BackendProvider = "claude"
	ProviderOpenAI BackendProvider = "openai"
	ProviderOllama BackendProvider = "ollama"
	ProviderNone   BackendProvider = "none"
)

// BackendConfig holds settings for the text-generation backend.
type BackendConfig struct {
	// Provider is one of gemini, claude, openai, ollama, or none.
	Provider BackendProvider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the provider's model identifier (e.g. "gemini-2.5-pro").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey authenticates against the provider. An empty key makes the
	// backend unavailable for providers that require one.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL overrides the provider endpoint (required for ollama).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// MaxTokens bounds the response length for providers that require it.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`
}

// CacheDriver selects the content cache implementation.
type CacheDriver string

const (
	CacheMemory CacheDriver = "memory"
	CacheSQLite CacheDriver = "sqlite"
)

// CacheConfig holds settings for the content cache.
type CacheConfig struct {
	// Driver is memory (default) or sqlite.
	Driver CacheDriver `json:"driver" yaml:"driver" mapstructure:"driver"`

	// Path is the SQLite database file. Empty keeps the database in memory
	// for the lifetime of the process.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
}

// AnalyzerConfig groups all settings for an interlinking run.
type AnalyzerConfig struct {
	HTTP HTTPConfig `json:"http" yaml:"http" mapstructure:"http"`

	// FetchDelay is the pause after each network fetch. Cache hits never wait.
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay" mapstructure:"fetch_delay"`

	// MaxDocuments is how many document references are considered per run.
	MaxDocuments int `json:"max_documents" yaml:"max_documents" mapstructure:"max_documents"`

	// Concurrency is the number of parallel fetch workers. 1 fetches strictly
	// in input order.
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`

	Limits  Limits        `json:"limits" yaml:"limits" mapstructure:"limits"`
	Backend BackendConfig `json:"backend" yaml:"backend" mapstructure:"backend"`
	Cache   CacheConfig   `json:"cache" yaml:"cache" mapstructure:"cache"`
}

// WithDefaults returns a copy of the config with default values applied for
// zero-value fields.
func (c AnalyzerConfig) WithDefaults() AnalyzerConfig {
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = DefaultFetchTimeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = BrowserUserAgent
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.HTTP.MaxRedirects <= 0 {
		c.HTTP.MaxRedirects = DefaultMaxRedirects
	}
	if c.FetchDelay < 0 {
		c.FetchDelay = 0
	}
	if c.MaxDocuments <= 0 {
		c.MaxDocuments = DefaultMaxDocuments
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	c.Limits = c.Limits.WithDefaults()
	if c.Backend.Provider == "" {
		c.Backend.Provider = ProviderGemini
	}
	if c.Backend.MaxTokens <= 0 {
		c.Backend.MaxTokens = DefaultMaxTokens
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = CacheMemory
	}
	return c
}

// WithDefaults fills zero-value limits.
func (l Limits) WithDefaults() Limits {
	if l.StructuredText <= 0 {
		l.StructuredText = DefaultStructuredText
	}
	if l.GenericText <= 0 {
		l.GenericText = DefaultGenericText
	}
	if l.PromptAbstract <= 0 {
		l.PromptAbstract = DefaultPromptAbstract
	}
	if l.PromptPreview <= 0 {
		l.PromptPreview = DefaultPromptPreview
	}
	return l
}

// DefaultAnalyzerConfig returns the configuration used when nothing is set,
// including the one-second rate-limit delay.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{FetchDelay: DefaultFetchDelay}.WithDefaults()
}
