package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config contiene la configuración del servicio
type Config struct {
	Port            string        `mapstructure:"PORT"`
	Environment     string        `mapstructure:"ENVIRONMENT"`
	APIURL          string        `mapstructure:"API_URL"`
	APITimeoutMS    int           `mapstructure:"API_TIMEOUT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogFormat       string        `mapstructure:"LOG_FORMAT"`
	CORSOrigins     string        `mapstructure:"CORS_ORIGINS"`
	RateLimitMax    int           `mapstructure:"RATE_LIMIT_MAX"`
	RateLimitWindow time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	CatalogosTTL    time.Duration `mapstructure:"CATALOGOS_TTL"`
	SesionesTTL     time.Duration `mapstructure:"SESIONES_TTL"`
	MaxUploadMB     int           `mapstructure:"MAX_UPLOAD_MB"`
	CIE11File       string        `mapstructure:"CIE11_FILE"`
	SentryDSN       string        `mapstructure:"SENTRY_DSN"`
	TrustedProxies  string        `mapstructure:"TRUSTED_PROXIES"`
}

var claves = []string{
	"PORT", "ENVIRONMENT", "API_URL", "API_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	"CORS_ORIGINS", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW", "CATALOGOS_TTL",
	"SESIONES_TTL", "MAX_UPLOAD_MB", "CIE11_FILE", "SENTRY_DSN",
	"TRUSTED_PROXIES",
}

// Load lee el archivo .env (si existe) y las variables de entorno
func Load() (*Config, error) {
	// El .env es opcional; en contenedores todo llega por entorno
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("API_URL", "http://localhost:8000/api/v1")
	v.SetDefault("API_TIMEOUT", 10000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("CATALOGOS_TTL", "10m")
	v.SetDefault("SESIONES_TTL", "2h")
	v.SetDefault("MAX_UPLOAD_MB", 10)

	for _, k := range claves {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa que los valores tengan sentido antes de arrancar
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_URL no es una URL válida: %q", c.APIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API_URL debe usar http o https, se recibió %q", u.Scheme)
	}
	if c.APITimeoutMS <= 0 {
		return fmt.Errorf("API_TIMEOUT debe ser mayor que 0, se recibió %d", c.APITimeoutMS)
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX debe ser mayor que 0")
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW debe ser mayor que 0")
	}
	if c.CatalogosTTL <= 0 || c.SesionesTTL <= 0 {
		return fmt.Errorf("CATALOGOS_TTL y SESIONES_TTL deben ser mayores que 0")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB debe ser mayor que 0")
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT debe ser \"json\" o \"console\", se recibió %q", c.LogFormat)
	}
	return nil
}

// APITimeout devuelve el timeout de las llamadas al backend
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutMS) * time.Millisecond
}

// MaxUploadBytes devuelve el límite de subida de archivos en bytes
func (c *Config) MaxUploadBytes() int {
	return c.MaxUploadMB * 1024 * 1024
}

// IsDev indica si el servicio corre en desarrollo
func (c *Config) IsDev() bool {
	return c.Environment == "development"
}

// Origins separa CORS_ORIGINS en la forma que espera el middleware de cors
func (c *Config) Origins() string {
	limpias := separar(c.CORSOrigins)
	if len(limpias) == 0 {
		return "*"
	}
	return strings.Join(limpias, ",")
}

// Proxies devuelve las IPs o rangos de TRUSTED_PROXIES. Solo de ellos se
// acepta X-Forwarded-For como IP del cliente.
func (c *Config) Proxies() []string {
	return separar(c.TrustedProxies)
}

func separar(valor string) []string {
	partes := strings.Split(valor, ",")
	limpias := make([]string, 0, len(partes))
	for _, p := range partes {
		if p = strings.TrimSpace(p); p != "" {
			limpias = append(limpias, p)
		}
	}
	return limpias
}
