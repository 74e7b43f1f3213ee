package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port" validate:"required,min=1,max=65535"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Notify configures the matching core and dispatcher.
	Notify NotifyConfig `json:"notify" yaml:"notify"`

	// SMS configures the ultra-rare escalation channel.
	SMS *SMSConfig `json:"sms" yaml:"sms"`

	// Firebase configuration for direct push delivery.
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// PubSub configuration for the ingest event feed.
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Catalog points at the reference data files.
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`

	// Guilds maps guild id (decimal string) to per-guild settings.
	Guilds map[string]*GuildConfig `json:"guilds" yaml:"guilds"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// NotifyConfig defines rate limiting, pacing and queue thresholds for the
// matching core and dispatcher.
type NotifyConfig struct {
	// Maximum deliveries per subscription within the rate-limit window.
	MaxPerWindow int `json:"maxPerWindow" yaml:"maxPerWindow"`

	// Sliding window duration for the rate limiter.
	Window time.Duration `json:"window" yaml:"window"`

	// Pacing delay between matched candidates during event processing.
	CandidatePacing time.Duration `json:"candidatePacing" yaml:"candidatePacing"`

	// Pacing delay between deliveries in the dispatch loop.
	DeliveryPacing time.Duration `json:"deliveryPacing" yaml:"deliveryPacing"`

	// Queue length above which the consumer logs a warning.
	QueueWarnLength int `json:"queueWarnLength" yaml:"queueWarnLength"`
}

// SMSConfig defines the Twilio escalation channel and its allow-lists.
type SMSConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	AccountSID string `json:"accountSid" yaml:"accountSid"`
	AuthToken  string `json:"authToken" yaml:"authToken"`
	FromNumber string `json:"fromNumber" yaml:"fromNumber"`

	// AllowedUserIDs may receive SMS escalations (guild owners always may).
	AllowedUserIDs []uint64 `json:"allowedUserIds" yaml:"allowedUserIds"`

	// PokemonIDs is the ultra-rare species allow-list; empty disables SMS.
	PokemonIDs []int `json:"pokemonIds" yaml:"pokemonIds"`

	// MinimumIV qualifies a listed species that is not inherently rare.
	MinimumIV float64 `json:"minimumIv" yaml:"minimumIv"`
}

// FirebaseConfig defines Firebase configuration for push notifications.
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// PubSubConfig defines the ingest feed transport.
type PubSubConfig struct {
	// Provider type: "local" for local HTTP push or "google" for Google Pub/Sub.
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider).
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider).
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP push endpoint for development (for local provider).
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// CatalogConfig points at the JSON reference data files.
type CatalogConfig struct {
	PokedexPath    string `json:"pokedexPath" yaml:"pokedexPath"`
	GruntTypesPath string `json:"gruntTypesPath" yaml:"gruntTypesPath"`
}

// GuildConfig holds the per-guild settings the matching core consults.
type GuildConfig struct {
	SubscriptionsEnabled bool   `json:"subscriptionsEnabled" yaml:"subscriptionsEnabled"`
	OwnerID              uint64 `json:"ownerId" yaml:"ownerId"`
}

// Guild returns the settings for a guild id, if configured.
func (c *Config) Guild(guildID uint64) (*GuildConfig, bool) {
	guild, ok := c.Guilds[strconv.FormatUint(guildID, 10)]

	return guild, ok
}

// Defaults for the notify section when the config file leaves them unset.
const (
	defaultMaxPerWindow    = 10
	defaultWindow          = time.Minute
	defaultCandidatePacing = 5 * time.Millisecond
	defaultDeliveryPacing  = 10 * time.Millisecond
	defaultQueueWarnLength = 30
)

func (n *NotifyConfig) applyDefaults() {
	if n.MaxPerWindow <= 0 {
		n.MaxPerWindow = defaultMaxPerWindow
	}
	if n.Window <= 0 {
		n.Window = defaultWindow
	}
	if n.CandidatePacing <= 0 {
		n.CandidatePacing = defaultCandidatePacing
	}
	if n.DeliveryPacing <= 0 {
		n.DeliveryPacing = defaultDeliveryPacing
	}
	if n.QueueWarnLength <= 0 {
		n.QueueWarnLength = defaultQueueWarnLength
	}
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.Notify.applyDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
