package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	Log    LogConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
	Report ReportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env     string // development, staging, production
	Name    string
	Version string
}

// LogConfig nivel de log (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// JWTConfig configuración de JWT. Secret vacío = rutas de reportes públicas.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// Enabled indica si las rutas de reportes exigen token.
func (c JWTConfig) Enabled() bool {
	return c.Secret != ""
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	BodyLimitMB int
	CORSOrigins string // lista separada por comas
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BodyLimit devuelve el límite de cuerpo en bytes.
func (c HTTPConfig) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}

// ReportConfig parámetros del pipeline de reportes.
type ReportConfig struct {
	RankingStoreCode string // tienda para la que se aplica el ranking externo
	DefaultFormat    string // xlsx, pdf, xml
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, JWT_SECRET, REPORT_RANKING_STORE_CODE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
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

// FromViper construye la configuración a partir de una instancia de Viper ya poblada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:     getString(v, "APP_ENV", "development"),
			Name:    getString(v, "APP_NAME", "relatorio-estoque"),
			Version: getString(v, "APP_VERSION", "1.0.0"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "relatorio-estoque"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8000),
			BodyLimitMB: getInt(v, "HTTP_BODY_LIMIT_MB", 50),
			CORSOrigins: getString(v, "CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
		},
		Report: ReportConfig{
			RankingStoreCode: getString(v, "REPORT_RANKING_STORE_CODE", "1225"),
			DefaultFormat:    strings.ToLower(getString(v, "REPORT_DEFAULT_FORMAT", "xlsx")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Report.DefaultFormat {
	case "xlsx", "pdf", "xml":
	default:
		return fmt.Errorf("config: REPORT_DEFAULT_FORMAT inválido %q", c.Report.DefaultFormat)
	}
	if c.HTTP.Port <= 0 {
		return fmt.Errorf("config: HTTP_PORT inválido %d", c.HTTP.Port)
	}
	if c.HTTP.BodyLimitMB <= 0 {
		return fmt.Errorf("config: HTTP_BODY_LIMIT_MB inválido %d", c.HTTP.BodyLimitMB)
	}
	if strings.TrimSpace(c.Report.RankingStoreCode) == "" {
		return fmt.Errorf("config: REPORT_RANKING_STORE_CODE vacío")
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
