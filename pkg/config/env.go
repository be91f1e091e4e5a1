package config

import (
	"strconv"
	"strings"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"

	"github.com/spf13/viper"
)

// RuntimeConfig is the outer configuration a runner needs that is not
// part of the decision math itself: which pairs to track, on what
// timeframe, and where to persist state. It is loaded from the
// environment the same way examples/trend_master/internal/config does
// it with Viper.
type RuntimeConfig struct {
	Pairs        []string
	Timeframe    string
	PollInterval time.Duration
	StatePath    string
	JournalDSN   string

	TelegramEnabled bool
	TelegramToken   string
	TelegramUsers   []int
}

// LoadRuntimeConfig reads RuntimeConfig from the environment, applying
// sensible defaults for anything unset.
func LoadRuntimeConfig() (RuntimeConfig, error) {
	viper.AutomaticEnv()

	viper.SetDefault("STRATEGYCORE_PAIRS", "BTCUSDT")
	viper.SetDefault("STRATEGYCORE_TIMEFRAME", "1h")
	viper.SetDefault("STRATEGYCORE_POLL_INTERVAL", "5m")
	viper.SetDefault("STRATEGYCORE_STATE_PATH", "./strategycore_state.db")
	viper.SetDefault("STRATEGYCORE_JOURNAL_DSN", "")
	viper.SetDefault("STRATEGYCORE_TELEGRAM_ENABLED", false)
	viper.SetDefault("STRATEGYCORE_TELEGRAM_TOKEN", "")
	viper.SetDefault("STRATEGYCORE_TELEGRAM_USERS", "")

	interval, err := str2duration.ParseDuration(viper.GetString("STRATEGYCORE_POLL_INTERVAL"))
	if err != nil {
		return RuntimeConfig{}, err
	}

	pairs := splitCSVEnv(viper.GetString("STRATEGYCORE_PAIRS"))

	var users []int
	for _, u := range splitCSVEnv(viper.GetString("STRATEGYCORE_TELEGRAM_USERS")) {
		id, err := strconv.Atoi(u)
		if err != nil {
			return RuntimeConfig{}, err
		}
		users = append(users, id)
	}

	return RuntimeConfig{
		Pairs:           pairs,
		Timeframe:       viper.GetString("STRATEGYCORE_TIMEFRAME"),
		PollInterval:    interval,
		StatePath:       viper.GetString("STRATEGYCORE_STATE_PATH"),
		JournalDSN:      viper.GetString("STRATEGYCORE_JOURNAL_DSN"),
		TelegramEnabled: viper.GetBool("STRATEGYCORE_TELEGRAM_ENABLED"),
		TelegramToken:   viper.GetString("STRATEGYCORE_TELEGRAM_TOKEN"),
		TelegramUsers:   users,
	}, nil
}

// splitCSVEnv splits a comma-separated environment value, trimming
// whitespace and dropping empty fields.
func splitCSVEnv(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
