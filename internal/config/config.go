package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "Local"

	configPathEnv     = "ALPHAHUNTER_CONFIG"
	dbPathEnv         = "ALPHAHUNTER_DB"
	logLevelEnv       = "ALPHAHUNTER_LOG_LEVEL"
	geminiAPIKeyEnv   = "GEMINI_API_KEY"
	geminiModelEnv    = "GEMINI_MODEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "CHAT_ID"
	previewOnlyEnv    = "TELEGRAM_PREVIEW_ONLY"
	taskRunOnceEnv    = "TASK_MANAGER_RUN_ONCE"
)

// Duration decodes YAML strings like "24h" or "90m" into a time.Duration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(value.Value))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std converts back to the standard library type.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Storage   StorageConfig   `yaml:"storage"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Sources   SourcesConfig   `yaml:"sources"`
	Tasks     TasksConfig     `yaml:"tasks"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// StorageConfig locates the SQLite database file.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// GeminiConfig defines how to contact the Gemini API for extraction.
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	// Model, when set, forces a single model and skips the candidate list.
	Model   string   `yaml:"model"`
	Models  []string `yaml:"models"`
	BaseURL string   `yaml:"baseUrl"`
}

// ModelsToTry returns the forced model when set, otherwise the candidates.
func (g GeminiConfig) ModelsToTry() []string {
	if m := strings.TrimSpace(g.Model); m != "" {
		return []string{m}
	}
	return g.Models
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken    string `yaml:"botToken"`
	ChatID      string `yaml:"chatId"`
	PreviewOnly bool   `yaml:"previewOnly"`
}

// Configured reports whether real delivery is possible.
func (t TelegramConfig) Configured() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// SchedulerConfig defines scan cadences and the whole-scan retry delay.
type SchedulerConfig struct {
	Timezone   string   `yaml:"timezone"`
	Daily      Duration `yaml:"daily"`
	MidTerm    Duration `yaml:"midTerm"`
	Weekly     Duration `yaml:"weekly"`
	Monthly    Duration `yaml:"monthly"`
	Scour      Duration `yaml:"scour"`
	RetryDelay Duration `yaml:"retryDelay"`

	location *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	return time.Local
}

// PipelineConfig carries notification-gate policy.
type PipelineConfig struct {
	// PersistSuppressed keeps the store current even for sightings whose
	// alert was gated away (already seen or below threshold).
	PersistSuppressed bool                `yaml:"persistSuppressed"`
	SeedProjects      []SeedProjectConfig `yaml:"seedProjects"`
}

// SeedProjectConfig is a baseline project written at boot unless present.
type SeedProjectConfig struct {
	Name  string `yaml:"name"`
	Score int    `yaml:"score"`
}

// SourcesConfig describes the upstream feeds per cadence.
type SourcesConfig struct {
	ItemLimit       int      `yaml:"itemLimit"`
	NitterAccounts  []string `yaml:"nitterAccounts"`
	NitterInstances []string `yaml:"nitterInstances"`
	SiteFeeds       []string `yaml:"siteFeeds"`
	SubstackFeeds   []string `yaml:"substackFeeds"`
	DefiLlamaURL    string   `yaml:"defillamaUrl"`
	CryptoRankURL   string   `yaml:"cryptorankUrl"`
}

// TasksConfig drives the recurring-task reminder.
type TasksConfig struct {
	ReminderHour int  `yaml:"reminderHour"`
	RunOnce      bool `yaml:"runOnce"`
}

// DashboardConfig holds the read-only HTTP listener address.
type DashboardConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Load reads YAML configuration (if present) over compiled defaults and
// applies environment overrides last. The file path comes from the
// ALPHAHUNTER_CONFIG environment variable, defaulting to config.yaml.
func Load() Config {
	return LoadPath("")
}

// LoadPath is Load with an explicit file path taking precedence over the
// environment-provided one. A missing file is only reported when it was
// named explicitly.
func LoadPath(path string) Config {
	explicit := path != ""
	if path == "" {
		path = os.Getenv(configPathEnv)
		explicit = path != ""
	}
	if path == "" {
		path = "config.yaml"
	}

	cfg := defaultConfig()

	if raw, err := os.ReadFile(path); err != nil {
		if explicit {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		}
	} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
		log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
		cfg = defaultConfig()
	}

	cfg.applyEnvOverrides()
	cfg.normalize()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(dbPathEnv); v != "" {
		c.Storage.Path = v
	}

	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.Gemini.APIKey = v
	}

	if v := os.Getenv(geminiModelEnv); v != "" {
		c.Gemini.Model = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Telegram.ChatID = v
	}

	if v := os.Getenv(previewOnlyEnv); v != "" {
		c.Telegram.PreviewOnly = Truthy(v)
	}

	if v := os.Getenv(taskRunOnceEnv); v != "" {
		c.Tasks.RunOnce = Truthy(v)
	}
}

// normalize backfills fields a config file may have blanked out.
func (c *Config) normalize() {
	def := defaultConfig()

	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Storage.Path == "" {
		c.Storage.Path = def.Storage.Path
	}
	if len(c.Gemini.Models) == 0 {
		c.Gemini.Models = def.Gemini.Models
	}
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = def.Gemini.BaseURL
	}
	if c.Scheduler.Daily == 0 {
		c.Scheduler.Daily = def.Scheduler.Daily
	}
	if c.Scheduler.MidTerm == 0 {
		c.Scheduler.MidTerm = def.Scheduler.MidTerm
	}
	if c.Scheduler.Weekly == 0 {
		c.Scheduler.Weekly = def.Scheduler.Weekly
	}
	if c.Scheduler.Monthly == 0 {
		c.Scheduler.Monthly = def.Scheduler.Monthly
	}
	if c.Scheduler.Scour == 0 {
		c.Scheduler.Scour = def.Scheduler.Scour
	}
	if c.Scheduler.RetryDelay == 0 {
		c.Scheduler.RetryDelay = def.Scheduler.RetryDelay
	}
	if c.Sources.ItemLimit <= 0 {
		c.Sources.ItemLimit = def.Sources.ItemLimit
	}
	if len(c.Sources.NitterInstances) == 0 {
		c.Sources.NitterInstances = def.Sources.NitterInstances
	}
	if c.Tasks.ReminderHour <= 0 || c.Tasks.ReminderHour > 23 {
		c.Tasks.ReminderHour = def.Tasks.ReminderHour
	}
	if c.Dashboard.Host == "" {
		c.Dashboard.Host = def.Dashboard.Host
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = def.Dashboard.Port
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc = time.Local
	}
	c.Scheduler.location = loc
}

// Truthy reports whether an environment-style flag value is enabled:
// one of 1, true, yes, on (case-insensitive).
func Truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Storage: StorageConfig{Path: "alpha_hunter.db"},
		Gemini: GeminiConfig{
			Models: []string{
				"gemini-1.5-flash",
				"gemini-1.5-flash-latest",
				"gemini-2.0-flash",
				"gemini-2.0-flash-lite",
			},
			BaseURL: "https://generativelanguage.googleapis.com/v1beta",
		},
		Telegram: TelegramConfig{},
		Scheduler: SchedulerConfig{
			Timezone:   defaultTimezone,
			Daily:      Duration(24 * time.Hour),
			MidTerm:    Duration(72 * time.Hour),
			Weekly:     Duration(7 * 24 * time.Hour),
			Monthly:    Duration(30 * 24 * time.Hour),
			Scour:      Duration(15 * time.Minute),
			RetryDelay: Duration(time.Hour),
		},
		Pipeline: PipelineConfig{PersistSuppressed: true},
		Sources: SourcesConfig{
			ItemLimit: 5,
			NitterAccounts: []string{
				"zachxbt",
				"Airdrop_Advise",
				"olivier_levy",
				"BanklessHQ",
				"milesjennings",
			},
			NitterInstances: []string{
				"https://nitter.net",
				"https://nitter.poast.org",
				"https://nitter.privacydev.net",
			},
			SiteFeeds: []string{
				"https://airdrops.io/feed/",
				"https://coinmarketcap.com/community/articles/rss/",
			},
			SubstackFeeds: []string{},
			DefiLlamaURL:  "https://api.llama.fi/protocols",
			CryptoRankURL: "https://cryptorank.io/funding-rounds",
		},
		Tasks:     TasksConfig{ReminderHour: 9},
		Dashboard: DashboardConfig{Host: "127.0.0.1", Port: 8000},
	}
}
