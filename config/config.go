package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "12MB"

	defaultBackendTimeout     = 10 * time.Second
	defaultMapsBaseURL        = "https://maps.googleapis.com"
	defaultMapsTimeout        = 5 * time.Second
	defaultDeliveryFee        = 200
	defaultDebounceInterval   = 500 * time.Millisecond
	defaultQuoteTimeout       = 10 * time.Second
	defaultCheckoutSessionTTL = 30 * time.Minute
	defaultCurrency           = "ETB"
	defaultMaxImageSize       = "5MB"
	defaultMaxDocumentSize    = "10MB"
	defaultSessionBlobURL     = "mem://"
	defaultSessionKeyPrefix   = "session:"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Backend is the marketplace REST API this service fronts
	Backend *BackendConfig `json:"backend" yaml:"backend"`

	// Maps configures the Google geocoding and places web services
	Maps *MapsConfig `json:"maps" yaml:"maps"`

	Checkout *CheckoutConfig `json:"checkout" yaml:"checkout"`

	// DeliveryFee selects where delivery fees are calculated
	DeliveryFee *DeliveryFeeConfig `json:"deliveryFee" yaml:"deliveryFee"`

	// Session configures the auth token store
	Session *SessionConfig `json:"session" yaml:"session"`

	Uploads *UploadsConfig `json:"uploads" yaml:"uploads"`

	// PubSub configuration for checkout event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// BackendConfig defines how the marketplace REST API is reached
type BackendConfig struct {
	BaseURL   string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
	UserAgent string        `json:"userAgent" yaml:"userAgent"`
}

// MapsConfig defines Google Maps web service access.
// An empty APIKey disables autocomplete and reverse geocoding.
type MapsConfig struct {
	APIKey   string        `json:"apiKey" yaml:"apiKey"`
	BaseURL  string        `json:"baseUrl" yaml:"baseUrl"`
	Language string        `json:"language" yaml:"language"`
	Region   string        `json:"region" yaml:"region"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// CheckoutConfig defines checkout session and fee estimation behaviour
type CheckoutConfig struct {
	DefaultDeliveryFee float64       `json:"defaultDeliveryFee" yaml:"defaultDeliveryFee"`
	DebounceInterval   time.Duration `json:"debounceInterval" yaml:"debounceInterval"`
	QuoteTimeout       time.Duration `json:"quoteTimeout" yaml:"quoteTimeout"`
	SessionTTL         time.Duration `json:"sessionTtl" yaml:"sessionTtl"`
	Currency           string        `json:"currency" yaml:"currency"`
}

// DeliveryFeeConfig defines the delivery fee calculator
type DeliveryFeeConfig struct {
	// Provider type: "backend" (default) or "local" for offline development
	Provider string `json:"provider" yaml:"provider"`

	// Origin is the store location used by the local provider
	Origin struct {
		Lat float64 `json:"lat" yaml:"lat"`
		Lng float64 `json:"lng" yaml:"lng"`
	} `json:"origin" yaml:"origin"`

	// Tiers priced by distance, ordered by UpToKm; a zero UpToKm is open-ended
	Tiers []FeeTierConfig `json:"tiers" yaml:"tiers"`
}

// FeeTierConfig is a single distance band
type FeeTierConfig struct {
	UpToKm float64 `json:"upToKm" yaml:"upToKm"`
	Fee    float64 `json:"fee" yaml:"fee"`
}

// SessionConfig defines where session tokens are stored
type SessionConfig struct {
	// Driver: "blob" (default) or "redis"
	Driver    string `json:"driver" yaml:"driver"`
	BlobURL   string `json:"blobUrl" yaml:"blobUrl"`
	KeyPrefix string `json:"keyPrefix" yaml:"keyPrefix"`
	Redis     struct {
		Addr     string `json:"addr" yaml:"addr"`
		Password string `json:"password" yaml:"password"`
		DB       int    `json:"db" yaml:"db"`
	} `json:"redis" yaml:"redis"`
}

// UploadsConfig defines client upload limits, as human readable sizes
type UploadsConfig struct {
	MaxImageSize    string `json:"maxImageSize" yaml:"maxImageSize"`
	MaxDocumentSize string `json:"maxDocumentSize" yaml:"maxDocumentSize"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// VerifyPushAuth makes the event worker require Google-signed push tokens
	VerifyPushAuth bool `json:"verifyPushAuth" yaml:"verifyPushAuth"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Example: MAPS_APIKEY -> maps.apiKey (not maps.apikey)
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
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

	if cfg.Backend == nil || strings.TrimSpace(cfg.Backend.BaseURL) == "" {
		return nil, errors.New("backend.baseUrl is required")
	}

	ApplyDefaults(cfg)

	return cfg, nil
}

// ApplyDefaults fills zero-valued sections and fields with their defaults.
func ApplyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Backend == nil {
		cfg.Backend = &BackendConfig{}
	}
	if cfg.Backend.Timeout <= 0 {
		cfg.Backend.Timeout = defaultBackendTimeout
	}

	if cfg.Maps == nil {
		cfg.Maps = &MapsConfig{}
	}
	if cfg.Maps.BaseURL == "" {
		cfg.Maps.BaseURL = defaultMapsBaseURL
	}
	if cfg.Maps.Timeout <= 0 {
		cfg.Maps.Timeout = defaultMapsTimeout
	}

	if cfg.Checkout == nil {
		cfg.Checkout = &CheckoutConfig{}
	}
	if cfg.Checkout.DefaultDeliveryFee <= 0 {
		cfg.Checkout.DefaultDeliveryFee = defaultDeliveryFee
	}
	if cfg.Checkout.DebounceInterval <= 0 {
		cfg.Checkout.DebounceInterval = defaultDebounceInterval
	}
	if cfg.Checkout.QuoteTimeout <= 0 {
		cfg.Checkout.QuoteTimeout = defaultQuoteTimeout
	}
	if cfg.Checkout.SessionTTL <= 0 {
		cfg.Checkout.SessionTTL = defaultCheckoutSessionTTL
	}
	if cfg.Checkout.Currency == "" {
		cfg.Checkout.Currency = defaultCurrency
	}

	if cfg.DeliveryFee == nil {
		cfg.DeliveryFee = &DeliveryFeeConfig{}
	}
	if len(cfg.DeliveryFee.Tiers) == 0 {
		cfg.DeliveryFee.Tiers = DefaultFeeTiers()
	}

	if cfg.Session == nil {
		cfg.Session = &SessionConfig{}
	}
	if cfg.Session.BlobURL == "" {
		cfg.Session.BlobURL = defaultSessionBlobURL
	}
	if cfg.Session.KeyPrefix == "" {
		cfg.Session.KeyPrefix = defaultSessionKeyPrefix
	}

	if cfg.Uploads == nil {
		cfg.Uploads = &UploadsConfig{}
	}
	if cfg.Uploads.MaxImageSize == "" {
		cfg.Uploads.MaxImageSize = defaultMaxImageSize
	}
	if cfg.Uploads.MaxDocumentSize == "" {
		cfg.Uploads.MaxDocumentSize = defaultMaxDocumentSize
	}
}

// DefaultFeeTiers is the published delivery pricing: 0-5 km, 5-10 km, 10+ km.
func DefaultFeeTiers() []FeeTierConfig {
	return []FeeTierConfig{
		{UpToKm: 5, Fee: 200},
		{UpToKm: 10, Fee: 300},
		{UpToKm: 0, Fee: 400},
	}
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
