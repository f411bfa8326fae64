package config

// Config is the top-level hypeless configuration, corresponding to .hypeless.yml.
type Config struct {
	TermsFile       string            `yaml:"terms_file" koanf:"terms_file"`
	DataDir         string            `yaml:"data_dir" koanf:"data_dir"`
	ExceptionWindow int               `yaml:"exception_window" koanf:"exception_window"`
	Annotate        AnnotateConfig    `yaml:"annotate" koanf:"annotate"`
	Editor          EditorConfig      `yaml:"editor" koanf:"editor"`
	Relay           RelayConfig       `yaml:"relay" koanf:"relay"`
	Coordinator     CoordinatorConfig `yaml:"coordinator" koanf:"coordinator"`
	LLM             LLMConfig         `yaml:"llm" koanf:"llm"`
}

// AnnotateConfig selects the HTML documents the annotate command reads.
type AnnotateConfig struct {
	Include   []string `yaml:"include" koanf:"include"`
	Exclude   []string `yaml:"exclude" koanf:"exclude"`
	OutputDir string   `yaml:"output_dir" koanf:"output_dir"`
}

// EditorConfig tunes editor detection and re-scanning.
type EditorConfig struct {
	DebounceMS       int      `yaml:"debounce_ms" koanf:"debounce_ms"`
	DetectAttempts   int      `yaml:"detect_attempts" koanf:"detect_attempts"`
	DetectIntervalMS int      `yaml:"detect_interval_ms" koanf:"detect_interval_ms"`
	MinContent       int      `yaml:"min_content" koanf:"min_content"`
	Hosts            []string `yaml:"hosts" koanf:"hosts"`
}

// RelayConfig configures the question relay.
type RelayConfig struct {
	Port              int    `yaml:"port" koanf:"port"`
	Model             string `yaml:"model" koanf:"model"`
	HistoryLimit      int    `yaml:"history_limit" koanf:"history_limit"`
	RequestsPerMinute int    `yaml:"requests_per_minute" koanf:"requests_per_minute"`
	AllowAllOrigins   bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	BaseURL           string `yaml:"base_url,omitempty" koanf:"base_url"`
}

// CoordinatorConfig configures the background coordinator.
type CoordinatorConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// LLMConfig is the suggestion model used until one is saved in the
// settings store.
type LLMConfig struct {
	Provider        string  `yaml:"provider" koanf:"provider"`
	Model           string  `yaml:"model" koanf:"model"`
	MaxTokens       int     `yaml:"max_tokens" koanf:"max_tokens"`
	Temperature     float64 `yaml:"temperature" koanf:"temperature"`
	SuggestionStyle string  `yaml:"suggestion_style" koanf:"suggestion_style"`
	BaseURL         string  `yaml:"base_url,omitempty" koanf:"base_url"`
}
