package transcription

// Config represents the configuration for the transcription service.
type Config struct {
	Enabled        bool   `toml:"enabled"`
	OpenAIAPIKey   string `toml:"openai_api_key"`
	Model          string `toml:"model"`
	Language       string `toml:"language"`
	Prompt         string `toml:"prompt"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}
