package internal

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	Host              string        `env:"HOST,default=0.0.0.0"`
	Port              int           `env:"PORT,default=3000"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	SiteTitle         string        `env:"SITE_TITLE,default=portfolio"`
	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT,default=10s"`

	ShoutboxBackend   string `env:"SHOUTBOX_BACKEND,default=auto"`
	ShoutboxListLimit int    `env:"SHOUTBOX_LIST_LIMIT,default=200"`
	MaxContentLength  int    `env:"MAX_CONTENT_LENGTH,default=500"`
	CensoredWords     string `env:"CENSORED_WORDS"`
	CharReplacement   string `env:"CENSOR_CHARACTER,default=*"`
	AdminJWTSecret    string `env:"ADMIN_JWT_SECRET"`

	DataDir        string `env:"DATA_DIR,default=data"`
	SQLitePath     string `env:"SQLITE_PATH,default=data/shoutbox.db"`
	BadgerFilepath string `env:"BADGER_FILEPATH,default=data/badger"`

	Postgres PostgresConfig

	Spotify SpotifyConfig

	LyricsEnabled bool   `env:"LYRICS_ENABLED,default=true"`
	LyricsAPIURL  string `env:"LYRICS_API_URL,default=https://lrclib.net"`
}

type PostgresConfig struct {
	URL           string `env:"POSTGRES_URL"`
	NonPoolingURL string `env:"POSTGRES_URL_NON_POOLING"`
	DatabaseURL   string `env:"DATABASE_URL"`
	User          string `env:"POSTGRES_USER"`
	Password      string `env:"POSTGRES_PASSWORD"`
	Host          string `env:"POSTGRES_HOST"`
	Port          string `env:"POSTGRES_PORT,default=5432"`
	Database      string `env:"POSTGRES_DB,default=postgres"`
	SSLMode       string `env:"PGSSLMODE"`
	SSLDisable    bool   `env:"PGSSL_DISABLE"`
	Debug         bool   `env:"DB_DEBUG"`
}

type SpotifyConfig struct {
	AccessToken  string `env:"SPOTIFY_ACCESS_TOKEN"`
	ClientID     string `env:"SPOTIFY_CLIENT_ID"`
	ClientSecret string `env:"SPOTIFY_CLIENT_SECRET"`
	RefreshToken string `env:"SPOTIFY_REFRESH_TOKEN"`
	TokenURL     string `env:"SPOTIFY_TOKEN_URL,default=https://accounts.spotify.com/api/token"`
	APIURL       string `env:"SPOTIFY_API_URL,default=https://api.spotify.com"`
	Debug        bool   `env:"DEBUG_SPOTIFY"`
}

// ConnectionString resolves the Postgres URL: POSTGRES_URL, then DATABASE_URL,
// then a URL built from the individual POSTGRES_* parts. Empty means not configured.
func (p PostgresConfig) ConnectionString() string {
	if p.URL != "" {
		return p.URL
	}
	if p.DatabaseURL != "" {
		return p.DatabaseURL
	}
	if p.User == "" || p.Host == "" {
		return ""
	}
	u := url.URL{
		Scheme: "postgresql",
		Host:   fmt.Sprintf("%s:%s", p.Host, p.Port),
		Path:   "/" + p.Database,
	}
	if p.Password != "" {
		u.User = url.UserPassword(p.User, p.Password)
	} else {
		u.User = url.User(p.User)
	}
	return u.String()
}

// DiagnosticConnectionString is the URL shown by the diagnostics endpoint.
func (p PostgresConfig) DiagnosticConnectionString() string {
	if p.NonPoolingURL != "" {
		return p.NonPoolingURL
	}
	return p.ConnectionString()
}

func (c Config) CensoredWordList() []string {
	var words []string
	for _, w := range strings.Split(c.CensoredWords, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func (c Config) CharacterRune() (rune, error) {
	r := []rune(c.CharReplacement)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CENSOR_CHARACTER must be a single character, got %q",
			c.CharReplacement,
		)
	}
	return r[0], nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
