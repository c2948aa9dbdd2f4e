package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/rocketscienceinc/tictactoe3d/internal/apperror"
	"github.com/rocketscienceinc/tictactoe3d/internal/entity"
	"github.com/rocketscienceinc/tictactoe3d/internal/service"
)

// Player kinds a seat can be configured with.
const (
	PlayerHuman  = "human"
	PlayerClaude = "claude"
	PlayerGemini = "gemini"
)

var ErrInvalidValue = errors.New("invalid configuration value")

type Config struct {
	LogLevel  string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	MoveDelay time.Duration `yaml:"move-delay" env:"MOVE_DELAY" env-default:"2s"`
	Players   Players       `yaml:"players"`
	Claude    Claude        `yaml:"claude"`
	Gemini    Gemini        `yaml:"gemini"`
	Retry     Retry         `yaml:"retry"`
	Console   Console       `yaml:"console"`
	Redis     Redis         `yaml:"redis"`
}

type Players struct {
	X string `yaml:"x" env:"PLAYER_X" env-default:"claude"`
	O string `yaml:"o" env:"PLAYER_O" env-default:"gemini"`
}

type Claude struct {
	APIKey      string        `yaml:"api-key" env:"ANTHROPIC_API_KEY"`
	Model       string        `yaml:"model" env:"CLAUDE_MODEL" env-default:"claude-3-haiku-20240307"`
	MaxTokens   int64         `yaml:"max-tokens" env:"CLAUDE_MAX_TOKENS" env-default:"1024"`
	RetryDelay  time.Duration `yaml:"retry-delay" env:"CLAUDE_RETRY_DELAY" env-default:"20s"`
	RepeatLimit int           `yaml:"repeat-limit" env:"CLAUDE_REPEAT_LIMIT" env-default:"3"`
}

type Gemini struct {
	APIKey string `yaml:"api-key" env:"GOOGLE_API_KEY"`
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
}

// Retry bounds the backoff applied to failing chat requests.
type Retry struct {
	MaxRetries      uint64        `yaml:"max-retries" env:"RETRY_MAX_RETRIES" env-default:"3"`
	InitialInterval time.Duration `yaml:"initial-interval" env:"RETRY_INITIAL_INTERVAL" env-default:"1s"`
	MaxInterval     time.Duration `yaml:"max-interval" env:"RETRY_MAX_INTERVAL" env-default:"10s"`
}

type Console struct {
	Plain bool `yaml:"plain" env:"PLAIN_OUTPUT"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Channel string `yaml:"channel" env:"REDIS_CHANNEL" env-default:"tictactoe3d:events"`
}

// Load - reads .env, then config.yml at path when it exists, then the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load .env file: %w", err)
	}

	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	} else if err = cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to load config from environment: %w", err)
	}

	config.Players.X = strings.ToLower(strings.TrimSpace(config.Players.X))
	config.Players.O = strings.ToLower(strings.TrimSpace(config.Players.O))

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate - checks the player kinds and that every chat player has its key.
func (that *Config) Validate() error {
	for _, mark := range []entity.Mark{entity.MarkX, entity.MarkO} {
		switch kind := that.Players.Kind(mark); kind {
		case PlayerHuman:
		case PlayerClaude:
			if that.Claude.APIKey == "" {
				return fmt.Errorf("%w: ANTHROPIC_API_KEY is required for player %s", apperror.ErrMissingCredential, mark)
			}
		case PlayerGemini:
			if that.Gemini.APIKey == "" {
				return fmt.Errorf("%w: GOOGLE_API_KEY is required for player %s", apperror.ErrMissingCredential, mark)
			}
		default:
			return fmt.Errorf("%w: %q for player %s", apperror.ErrUnknownPlayerKind, kind, mark)
		}
	}

	if that.MoveDelay < 0 {
		return fmt.Errorf("%w: move-delay must not be negative", ErrInvalidValue)
	}

	if that.Claude.MaxTokens <= 0 {
		return fmt.Errorf("%w: claude max-tokens must be positive", ErrInvalidValue)
	}

	if that.Claude.RepeatLimit < service.MinRepeatLimit {
		return fmt.Errorf("%w: claude repeat-limit must be at least %d", ErrInvalidValue, service.MinRepeatLimit)
	}

	return nil
}

// Kind returns the configured player kind of the seat.
func (that *Players) Kind(mark entity.Mark) string {
	if mark == entity.MarkO {
		return that.O
	}
	return that.X
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
