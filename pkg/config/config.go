package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del panel (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	API    APIConfig
	Push   PushConfig
	Cache  CacheConfig
	Search SearchConfig
	Upload UploadConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
	AI     AIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig datos del backend REST de la plataforma de subastas.
// Las rutas siguen la convención /<Database>/<colección>[/<id>].
type APIConfig struct {
	BaseURL  string
	Database string
	Timeout  time.Duration
	Token    string // Bearer fijo; si está vacío se firma uno con JWT.Secret
}

// PushConfig canal de notificaciones en tiempo real (websocket).
// MaxRetries es el total de intentos de conexión por ciclo, incluido el primero.
type PushConfig struct {
	URL         string
	Room        string
	MaxRetries  int
	RetryDelay  time.Duration
	ReadTimeout time.Duration // sin mensajes ni ping en este plazo se reconecta
}

// Enabled indica si hay un canal push configurado.
func (c PushConfig) Enabled() bool { return c.URL != "" }

// CacheConfig TTL por colección. Las colecciones más volátiles usan TTL más corto.
type CacheConfig struct {
	ProductsTTL   time.Duration
	CategoriesTTL time.Duration
	OrdersTTL     time.Duration
	UsersTTL      time.Duration
}

// SearchConfig periodo de silencio del buscador con debounce.
type SearchConfig struct {
	Debounce time.Duration
}

// UploadConfig límites de subida de imágenes (el servidor es quien decide al final).
type UploadConfig struct {
	MaxBytes int64
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret      string
	Expiration  int // minutos
	Issuer      string
	ServiceUser string // sujeto del token de servicio que usa el cliente REST
}

// HTTPConfig configuración del gateway HTTP.
type HTTPConfig struct {
	Host string
	Port int
	Docs bool
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AIConfig credenciales del servicio de generación de textos.
type AIConfig struct {
	AnthropicAPIKey string
	AnthropicModel  string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, PUSH_URL, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia ya poblada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "subastas-admin"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL:  strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:3000"), "/"),
			Database: getString(v, "API_DATABASE", "subastas"),
			Timeout:  time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 15)) * time.Second,
			Token:    getString(v, "API_TOKEN", ""),
		},
		Push: PushConfig{
			URL:         getString(v, "PUSH_URL", ""),
			Room:        getString(v, "PUSH_ROOM", "admin"),
			MaxRetries:  getInt(v, "PUSH_MAX_RETRIES", 5),
			RetryDelay:  time.Duration(getInt(v, "PUSH_RETRY_DELAY_MS", 1000)) * time.Millisecond,
			ReadTimeout: seconds(v, "PUSH_READ_TIMEOUT_SECONDS", 90),
		},
		Cache: CacheConfig{
			ProductsTTL:   seconds(v, "CACHE_PRODUCTS_TTL_SECONDS", 120),
			CategoriesTTL: seconds(v, "CACHE_CATEGORIES_TTL_SECONDS", 300),
			OrdersTTL:     seconds(v, "CACHE_ORDERS_TTL_SECONDS", 30),
			UsersTTL:      seconds(v, "CACHE_USERS_TTL_SECONDS", 300),
		},
		Search: SearchConfig{
			Debounce: time.Duration(getInt(v, "SEARCH_DEBOUNCE_MS", 400)) * time.Millisecond,
		},
		Upload: UploadConfig{
			MaxBytes: int64(getInt(v, "UPLOAD_MAX_BYTES", 5*1024*1024)),
		},
		JWT: JWTConfig{
			Secret:      getString(v, "JWT_SECRET", ""),
			Expiration:  getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:      getString(v, "JWT_ISSUER", "subastas-admin"),
			ServiceUser: getString(v, "JWT_SERVICE_USER", "admin-panel"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
			Docs: getBool(v, "HTTP_DOCS", false),
		},
		AI: AIConfig{
			AnthropicAPIKey: getString(v, "AI_ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "AI_ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
		},
	}

	if cfg.Push.MaxRetries < 0 {
		return nil, fmt.Errorf("config: PUSH_MAX_RETRIES no puede ser negativo")
	}
	if cfg.Upload.MaxBytes <= 0 {
		return nil, fmt.Errorf("config: UPLOAD_MAX_BYTES debe ser positivo")
	}
	return cfg, nil
}

func seconds(v *viper.Viper, key string, def int) time.Duration {
	return time.Duration(getInt(v, key, def)) * time.Second
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
