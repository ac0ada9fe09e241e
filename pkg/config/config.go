package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	JWT      JWTConfig
	Storage  StorageConfig
	DB       DBConfig
	Files    FilesConfig
	AI       AIConfig
	Registry RegistryConfig
	Auth     AuthConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// Drivers del almacén de documentos.
const (
	StorageJSON     = "json"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// StorageConfig elige el adaptador del DocumentStore.
type StorageConfig struct {
	Driver   string
	JSONPath string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Drivers del almacén de adjuntos.
const (
	FilesLocal = "local"
	FilesS3    = "s3"
)

// FilesConfig configuración del almacén de PDFs.
type FilesConfig struct {
	Driver       string
	Dir          string // FILES_DIR, por defecto public/PDF
	PublicPrefix string // ruta pública, por defecto /PDF
	MaxUploadMB  int
	S3           S3Config
}

// S3Config credenciales de S3 o MinIO. Endpoint vacío = AWS.
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// AIConfig proveedor de IA para OCR y resumen. Sin API key el colaborador queda deshabilitado.
type AIConfig struct {
	Provider        string // gemini | anthropic
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	TimeoutSeconds  int
}

// RegistryConfig consulta de CNPJ (BrasilAPI).
type RegistryConfig struct {
	BaseURL         string
	CacheTTLMinutes int
}

// AuthConfig contraseñas y administrador inicial.
type AuthConfig struct {
	HashPasswords     bool
	SeedAdminLogin    string
	SeedAdminPassword string
	SeedAdminEmail    string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad.
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

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "portal-notas"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 4444),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "portal-notas"),
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(getString(v, "STORAGE_DRIVER", StorageJSON)),
			JSONPath: getString(v, "STORAGE_JSON_PATH", "database.json"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "portal_notas"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Files: FilesConfig{
			Driver:       strings.ToLower(getString(v, "FILES_DRIVER", FilesLocal)),
			Dir:          getString(v, "FILES_DIR", "public/PDF"),
			PublicPrefix: getString(v, "FILES_PUBLIC_PREFIX", "/PDF"),
			MaxUploadMB:  getInt(v, "FILES_MAX_UPLOAD_MB", 20),
			S3: S3Config{
				Endpoint:  getString(v, "S3_ENDPOINT", ""),
				Region:    getString(v, "S3_REGION", "us-east-1"),
				Bucket:    getString(v, "S3_BUCKET", ""),
				AccessKey: getString(v, "S3_ACCESS_KEY", ""),
				SecretKey: getString(v, "S3_SECRET_KEY", ""),
			},
		},
		AI: AIConfig{
			Provider:        strings.ToLower(getString(v, "AI_PROVIDER", "gemini")),
			GeminiAPIKey:    getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:     getString(v, "GEMINI_MODEL", "gemini-2.0-flash"),
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
			TimeoutSeconds:  getInt(v, "AI_TIMEOUT_SECONDS", 30),
		},
		Registry: RegistryConfig{
			BaseURL:         getString(v, "REGISTRY_BASE_URL", "https://brasilapi.com.br/api/cnpj/v1"),
			CacheTTLMinutes: getInt(v, "REGISTRY_CACHE_TTL_MINUTES", 60),
		},
		Auth: AuthConfig{
			HashPasswords:     getBool(v, "AUTH_HASH_PASSWORDS", false),
			SeedAdminLogin:    getString(v, "SEED_ADMIN_LOGIN", "delp"),
			SeedAdminPassword: getString(v, "SEED_ADMIN_PASSWORD", "delp1234"),
			SeedAdminEmail:    getString(v, "SEED_ADMIN_EMAIL", "admin@delp.com.br"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageJSON, StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("config: STORAGE_DRIVER inválido %q", c.Storage.Driver)
	}
	switch c.Files.Driver {
	case FilesLocal:
	case FilesS3:
		if c.Files.S3.Bucket == "" {
			return fmt.Errorf("config: S3_BUCKET es obligatorio con FILES_DRIVER=s3")
		}
	default:
		return fmt.Errorf("config: FILES_DRIVER inválido %q", c.Files.Driver)
	}
	return nil
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
			n, err := strconv.Atoi(v.GetString(key))
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
