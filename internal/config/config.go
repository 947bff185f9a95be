package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Переменные окружения процесса.
const (
	EnvPort      = "BOINGLE_PORT"
	EnvPreset    = "BOINGLE_PRESET"
	EnvConfig    = "BOINGLE_CONFIG"
	EnvSeed      = "BOINGLE_SEED"
	EnvReplayDir = "BOINGLE_REPLAY_DIR"
	EnvDebug     = "BOINGLE_DEBUG"
)

// Config - настройки процесса (сервер, реплеи, баланс).
type Config struct {
	Port        string
	Preset      string
	BalanceFile string
	Seed        int64
	ReplayDir   string
	Debug       bool

	Balance Balance
}

// Load читает .env (если он есть), затем переменные окружения,
// затем файл баланса поверх выбранного пресета.
func Load(envFiles ...string) (Config, error) {
	if err := loadDotEnv(envFiles...); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:        getEnv(EnvPort, "8080"),
		Preset:      getEnv(EnvPreset, PresetDefault),
		BalanceFile: os.Getenv(EnvConfig),
		ReplayDir:   getEnv(EnvReplayDir, "replays"),
		Debug:       getEnvBool(EnvDebug),
	}

	if raw := os.Getenv(EnvSeed); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvSeed, raw, err)
		}
		cfg.Seed = seed
	}

	balance, err := Preset(cfg.Preset)
	if err != nil {
		return Config{}, err
	}
	if cfg.BalanceFile != "" {
		balance, err = LoadBalanceFile(cfg.BalanceFile, balance)
		if err != nil {
			return Config{}, err
		}
	}
	if err := balance.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid balance: %w", err)
	}
	cfg.Balance = balance

	return cfg, nil
}

// LoadBalanceFile накладывает YAML-файл на base: поля, которых нет
// в файле, остаются из base.
func LoadBalanceFile(path string, base Balance) (Balance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Balance{}, fmt.Errorf("read balance file: %w", err)
	}
	return ParseBalance(data, base)
}

// ParseBalance разбирает YAML поверх base.
func ParseBalance(data []byte, base Balance) (Balance, error) {
	out := base
	// Карту цен копируем, чтобы не испортить пресет вызывающего.
	out.Prices = make(map[string]uint, len(base.Prices))
	for k, v := range base.Prices {
		out.Prices[k] = v
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return Balance{}, fmt.Errorf("parse balance: %w", err)
	}
	normalized := make(map[string]uint, len(out.Prices))
	for k, v := range out.Prices {
		normalized[strings.ToUpper(k)] = v
	}
	out.Prices = normalized
	return out, nil
}

// MarshalBalance сериализует баланс в YAML (для /debug и шаблона конфига).
func MarshalBalance(b Balance) ([]byte, error) {
	return yaml.Marshal(b)
}

func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			// Отсутствующий .env - нормальная ситуация.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
