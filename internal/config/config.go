package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Origens de dados aceitas em DATA_SOURCE
const (
	DataSourceMock     = "mock"
	DataSourceCSV      = "csv"
	DataSourceAPI      = "api"
	DataSourcePostgres = "postgres"
	DataSourceSQLite   = "sqlite"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	DataSource   DataSource   `mapstructure:",squash"`
	Mock         Mock         `mapstructure:",squash"`
	CSV          CSV          `mapstructure:",squash"`
	API          API          `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Segmentation Segmentation `mapstructure:",squash"`
	Telemetry    Telemetry    `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Locale   string `mapstructure:"app_locale"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type DataSource struct {
	Kind string `mapstructure:"data_source"`
}

type Mock struct {
	Donors        int     `mapstructure:"mock_donors"`
	Seed          uint64  `mapstructure:"mock_seed"`
	HistoryDays   int     `mapstructure:"mock_history_days"`
	MeanDonations float64 `mapstructure:"mock_mean_donations"`
}

type CSV struct {
	Path         string `mapstructure:"csv_path"`
	Delimiter    string `mapstructure:"csv_delimiter"`
	StrictSchema bool   `mapstructure:"csv_strict_schema"`
}

type API struct {
	BaseURL string        `mapstructure:"api_base_url"`
	Token   string        `mapstructure:"api_token"`
	Timeout time.Duration `mapstructure:"api_timeout"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Table    string `mapstructure:"database_table"`
}

type Segmentation struct {
	DefaultK int    `mapstructure:"segmentation_default_k"`
	Seed     uint64 `mapstructure:"segmentation_seed"`
	NInit    int    `mapstructure:"segmentation_n_init"`
	MaxIter  int    `mapstructure:"segmentation_max_iter"`
}

type Telemetry struct {
	Enabled  bool   `mapstructure:"otel_enabled"`
	Endpoint string `mapstructure:"otel_endpoint"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", "8501")

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_LOCALE", "de-DE")

	viper.SetDefault("DATA_SOURCE", DataSourceMock) // Dados sintéticos para desenvolvimento

	viper.SetDefault("MOCK_DONORS", 200)
	viper.SetDefault("MOCK_SEED", 42)
	viper.SetDefault("MOCK_HISTORY_DAYS", 3*365)
	viper.SetDefault("MOCK_MEAN_DONATIONS", 8.0) // Média de Poisson de doações por doador

	viper.SetDefault("CSV_PATH", "data/donations.csv")
	viper.SetDefault("CSV_DELIMITER", ",")
	viper.SetDefault("CSV_STRICT_SCHEMA", false)

	viper.SetDefault("API_BASE_URL", "https://api.example.com")
	viper.SetDefault("API_TOKEN", "")
	viper.SetDefault("API_TIMEOUT", "30s")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/donors?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_TABLE", "donations")

	viper.SetDefault("SEGMENTATION_DEFAULT_K", 4)
	viper.SetDefault("SEGMENTATION_SEED", 42)
	viper.SetDefault("SEGMENTATION_N_INIT", 1)
	viper.SetDefault("SEGMENTATION_MAX_ITER", 300)

	viper.SetDefault("OTEL_ENABLED", false)
	viper.SetDefault("OTEL_ENDPOINT", "")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.DataSource.Kind = strings.ToLower(strings.TrimSpace(config.DataSource.Kind))
	if config.DataSource.Kind == DataSourcePostgres || config.DataSource.Kind == DataSourceSQLite {
		config.Database.Driver = config.DataSource.Kind
	}

	if config.Database.Driver == DataSourceSQLite {
		config.Database.DSN = config.Database.URL
	} else {
		config.Database.DSN = fmt.Sprintf(
			"%s://%s:%s@%s",
			config.Database.Driver,
			config.Database.User,
			config.Database.Password,
			config.Database.URL,
		)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate verifica as combinações de configuração antes de iniciar o painel
func (c *Config) Validate() error {
	switch c.DataSource.Kind {
	case DataSourceMock, DataSourceCSV, DataSourceAPI, DataSourcePostgres, DataSourceSQLite:
	default:
		return fmt.Errorf("config: DATA_SOURCE inválido: %q", c.DataSource.Kind)
	}

	if c.Segmentation.DefaultK < 2 || c.Segmentation.DefaultK > 8 {
		return fmt.Errorf("config: SEGMENTATION_DEFAULT_K deve estar entre 2 e 8, recebido %d", c.Segmentation.DefaultK)
	}

	if c.Mock.Donors < 0 || c.Mock.HistoryDays < 0 || c.Mock.MeanDonations < 0 {
		return fmt.Errorf("config: MOCK_DONORS, MOCK_HISTORY_DAYS e MOCK_MEAN_DONATIONS não podem ser negativos")
	}

	if c.Segmentation.NInit < 1 || c.Segmentation.MaxIter < 1 {
		return fmt.Errorf("config: SEGMENTATION_N_INIT e SEGMENTATION_MAX_ITER devem ser positivos")
	}

	if c.DataSource.Kind == DataSourceCSV && c.CSV.Path == "" {
		return fmt.Errorf("config: CSV_PATH é obrigatório para DATA_SOURCE=csv")
	}

	if len([]rune(c.CSV.Delimiter)) != 1 {
		return fmt.Errorf("config: CSV_DELIMITER deve ter exatamente um caractere")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
