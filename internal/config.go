package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Config struct {
	LocalUserID     int           `env:"LOCAL_USER_ID,required=true"`
	BufferSize      int           `env:"BUFFER_SIZE,default=64"`
	SinkTimeout     time.Duration `env:"SINK_TIMEOUT,default=2s"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	CensoredDir     string        `env:"CENSORED_DIR"`
	CensoredWords   string        `env:"CENSORED_WORDS"`
	CharReplacement string        `env:"CHARACTER_REPLACEMENT,default=*"`
	LimitEntries    *int          `env:"LIMIT_JOURNAL_ENTRIES"`
	SearchLimit     int           `env:"SEARCH_LIMIT,default=10"`
	TimelineLimit   int           `env:"TIMELINE_LIMIT,default=50"`
	HealthInterval  time.Duration `env:"HEALTH_INTERVAL,default=30s"`
	Colours         bool          `env:"COLOURS,default=true"`
	Bell            bool          `env:"BELL,default=false"`
	RenderState     bool          `env:"RENDER_STATE,default=true"`
}

func (c Config) CharacterRune() (rune, error) {
	r := []rune(c.CharReplacement)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			c.CharReplacement,
		)
	}
	return r[0], nil
}

// Words splits CENSORED_WORDS on commas.
func (c Config) Words() []string {
	return lo.Compact(lo.Map(strings.Split(c.CensoredWords, ","), func(w string, _ int) string {
		return strings.TrimSpace(w)
	}))
}

// ModerationEnabled is false when no word source is configured.
func (c Config) ModerationEnabled() bool {
	return c.CensoredDir != "" || len(c.Words()) > 0
}
