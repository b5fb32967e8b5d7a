package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Search    SearchConfig
	Dashboard DashboardConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel del logger (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
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

// SearchConfig conexión al índice de documentos (Elasticsearch/OpenSearch).
type SearchConfig struct {
	BaseURL   string // ej. http://localhost:9200
	Index     string // por defecto product_sales
	Timeout   time.Duration
	FetchSize int // tamaño del fetch inicial (100)
}

// DashboardConfig parámetros de presentación del dashboard.
type DashboardConfig struct {
	Locale          string // BCP 47, decide el formato de la fecha de cada bucket diario
	TimeZone        string // IANA o "Local"
	DefaultMaxPrice decimal.Decimal
}

// Location resuelve la zona horaria configurada; "" o "Local" = zona del proceso.
func (c DashboardConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" || strings.EqualFold(c.TimeZone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("DASHBOARD_TIMEZONE inválido: %w", err)
	}
	return loc, nil
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, ES_BASE_URL, ES_INDEX, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

// fromViper construye la configuración a partir de una instancia ya poblada.
func fromViper(v *viper.Viper) (*Config, error) {
	maxPrice, err := getDecimal(v, "DASHBOARD_DEFAULT_MAX_PRICE", decimal.NewFromInt(500))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "sales-dashboard"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Search: SearchConfig{
			BaseURL:   strings.TrimRight(getString(v, "ES_BASE_URL", "http://localhost:9200"), "/"),
			Index:     getString(v, "ES_INDEX", "product_sales"),
			Timeout:   time.Duration(getInt(v, "ES_TIMEOUT_SECONDS", 10)) * time.Second,
			FetchSize: getInt(v, "ES_FETCH_SIZE", 100),
		},
		Dashboard: DashboardConfig{
			Locale:          getString(v, "DASHBOARD_LOCALE", "en-US"),
			TimeZone:        getString(v, "DASHBOARD_TIMEZONE", "Local"),
			DefaultMaxPrice: maxPrice,
		},
	}

	if cfg.Search.Index == "" {
		return nil, fmt.Errorf("ES_INDEX no puede estar vacío")
	}
	if cfg.Search.FetchSize <= 0 {
		return nil, fmt.Errorf("ES_FETCH_SIZE debe ser mayor que 0")
	}
	if _, err := cfg.Dashboard.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
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

func getDecimal(v *viper.Viper, key string, def decimal.Decimal) (decimal.Decimal, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s inválido: %w", key, err)
	}
	return d, nil
}
