package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Slack         SlackConfig
	Turso         TursoConfig
	Inngest       InngestConfig
	ProjectID     string
	Playtomic     PlaytomicConfig
	Matchmaking   MatchmakingConfig
	// Comma separated list of origins allowed to call the API from a browser.
	CORSAllowedOrigins []string
}
type SlackConfig struct {
	Token     string
	ChannelID string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type InngestConfig struct {
	SigningKey string
	EventKey   string
	AppID      string
}

// Enabled reports whether enough keys are present to register workflows.
func (c InngestConfig) Enabled() bool {
	return c.AppID != "" && c.SigningKey != ""
}

// PlaytomicConfig configures the rating sync. Clubs are linked to their
// Playtomic tenant in the club store.
type PlaytomicConfig struct {
	// Cron spec for the scheduled rating sync, empty disables it.
	SyncSchedule string
}
type MatchmakingConfig struct {
	DefaultLimit int
}
