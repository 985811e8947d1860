package config

const (
	defaultSourceDir           = "."
	defaultTargetDir           = "./organized"
	defaultSimilarityThreshold = 0.30
	defaultFallbackCategory    = "Misc"
	defaultLLMBaseURL          = "http://localhost:1234/v1/chat/completions"
	defaultLLMModel            = "local-model"
	defaultLLMTitle            = "smartsort"
	defaultLLMTemperature      = 0.3
	defaultLLMTimeoutSeconds   = 10
	defaultLLMRetryAttempts    = 1
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

var defaultExcludeDirs = []string{".git", "__pycache__", ".pytest_cache"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir(),
		},
		Organize: Organize{
			SourceDir:           defaultSourceDir,
			TargetDir:           defaultTargetDir,
			SimilarityThreshold: defaultSimilarityThreshold,
			ExcludeDirs:         append([]string(nil), defaultExcludeDirs...),
			FallbackCategory:    defaultFallbackCategory,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Title:          defaultLLMTitle,
			Temperature:    defaultLLMTemperature,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
			RetryAttempts:  defaultLLMRetryAttempts,
		},
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
