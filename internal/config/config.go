package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	// 前端静态文件目录，为空时不提供静态文件
	StaticDir string `mapstructure:"static_dir"`
	// 词库文件，为空时使用内置词库
	WordsFile string `mapstructure:"words_file"`

	Game   GameConfig   `mapstructure:"game"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	WS     WSConfig     `mapstructure:"ws"`
}

type GameConfig struct {
	MinPlayers         int           `mapstructure:"min_players"`
	MaxPlayers         int           `mapstructure:"max_players"`
	RoleRevealDelay    time.Duration `mapstructure:"role_reveal_delay"`
	ResultDelay        time.Duration `mapstructure:"result_delay"`
	TurnTimeout        time.Duration `mapstructure:"turn_timeout"`
	TimedRoundMinAlive int           `mapstructure:"timed_round_min_alive"`
	MaxClueLength      int           `mapstructure:"max_clue_length"`
	// 随机种子，0 表示按启动时间取种
	Seed uint64 `mapstructure:"seed"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type WSConfig struct {
	// 每个连接每秒允许的请求数
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
	// 允许建立 WebSocket 连接的浏览器来源，为空时不限制
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

var cfg *AppConfig

func GetConfig() *AppConfig {
	if cfg == nil {
		cfg = InitConfig()
	}

	return cfg
}

// InitConfig 先把工作目录下的 .env 载入进程环境（文件可选），再读取配置
func InitConfig() *AppConfig {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("加载 .env 失败: %w", err))
	}

	v := viper.New()

	v.SetConfigName("app_config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	config, err := Load(v)
	if err != nil {
		panic(err)
	}

	cfg = config

	return config
}

// Load 读取配置文件（可选）和环境变量，环境变量以 SHADOW_ 为前缀，
// 例如 SHADOW_PORT、SHADOW_GAME_TURN_TIMEOUT
func Load(v *viper.Viper) (*AppConfig, error) {
	setDefaults(v)

	v.SetEnvPrefix("shadow")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("gemini.api_key", "SHADOW_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("绑定环境变量失败: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("加载配置失败: %w", err)
		}
	}

	var config AppConfig

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 4000)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("static_dir", "")
	v.SetDefault("words_file", "")

	v.SetDefault("game.min_players", 3)
	v.SetDefault("game.max_players", 8)
	v.SetDefault("game.role_reveal_delay", "5s")
	v.SetDefault("game.result_delay", "5s")
	v.SetDefault("game.turn_timeout", "30s")
	v.SetDefault("game.timed_round_min_alive", 3)
	v.SetDefault("game.max_clue_length", 100)
	v.SetDefault("game.seed", 0)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")

	v.SetDefault("ws.rate_limit", 5)
	v.SetDefault("ws.rate_burst", 10)
	v.SetDefault("ws.allowed_origins", []string{})
}

func (c *AppConfig) validate() error {
	if c.Game.MinPlayers < 3 {
		return errors.New("game.min_players 不能小于 3")
	}

	if c.Game.MaxPlayers < c.Game.MinPlayers {
		return errors.New("game.max_players 不能小于 game.min_players")
	}

	if c.Game.TurnTimeout <= 0 || c.Game.RoleRevealDelay <= 0 || c.Game.ResultDelay <= 0 {
		return errors.New("游戏计时配置必须为正数")
	}

	if c.Game.MaxClueLength <= 0 {
		return errors.New("game.max_clue_length 必须为正数")
	}

	return nil
}
