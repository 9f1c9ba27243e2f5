package cfg

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage and input files
	DBPath         string `long:"db-path" env:"DB_PATH" default:"rss_data.db" description:"Path to the SQLite item store"`
	FeedConfig     string `long:"feed-config" env:"FEED_CONFIG" default:"feed.yml" description:"Feed configuration file (optional)"`
	PartitionsFile string `long:"partitions-file" env:"PARTITIONS_FILE" default:"categories.txt" description:"Newline-delimited list of categories to poll"`
	KeywordsFile   string `long:"keywords-file" env:"KEYWORDS_FILE" default:"filterList.ini" description:"Keyword list ([keywords] section or one phrase per line)"`
	StopwordsFile  string `long:"stopwords-file" env:"STOPWORDS_FILE" default:"stopwords.ini" description:"Stopword list ([stopwords] section or one phrase per line)"`

	// Delivery
	TelegramToken  string `long:"telegram-token" env:"TELEGRAM_TOKEN" description:"Telegram bot token"`
	TelegramChatID string `long:"telegram-chat-id" env:"TELEGRAM_CHAT_ID" description:"Telegram chat to notify"`

	// Upstream requests
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (compatible; feed-notify/1.0)" description:"User agent string for feed requests"`
	Cookies   string `long:"cookies" env:"COOKIES" description:"Cookie header sent with feed requests"`

	// Run mode
	Once         bool `long:"once" description:"Run a single cycle and exit"`
	ScheduleOnly bool `long:"schedule-only" description:"Skip the immediate cycle and wait for the schedule"`

	// Maintenance
	ClearAll       bool `long:"clear-all" description:"Delete all stored items and exit"`
	ClearPartition *int `long:"clear-partition" value-name:"N" description:"Delete stored items of category N and exit"`

	// Application metadata
	MetricsPort string `long:"metrics-port" env:"METRICS_PORT" description:"Serve /health and /metrics on this port (disabled when empty)"`
	Timezone    string `long:"timezone" env:"TZ" default:"Local" description:"Timezone for schedule times (e.g., UTC, Europe/Moscow)"`
	Debug       bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load reads .env, environment variables and the command line. It returns
// nil, nil when help was requested.
func Load(args []string) (*Cfg, error) {
	if err := loadEnvFile(cmp.Or(os.Getenv("ENV_FILE"), ".env")); err != nil {
		return nil, err
	}

	cfg, help, err := parse(args)
	if err != nil {
		return nil, err
	}
	if help != "" {
		fmt.Fprint(os.Stdout, help)
		return nil, nil
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func parse(args []string) (*Cfg, string, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "feed-notify"

	usage := func() string {
		var buf bytes.Buffer
		parser.WriteHelp(&buf)
		return buf.String()
	}

	rest, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, usage(), nil
		}
		return nil, "", &UsageError{Err: fmt.Errorf("failed to parse configuration: %w", err), Usage: usage()}
	}

	if len(rest) > 0 {
		return nil, "", &UsageError{Err: fmt.Errorf("unknown argument: %s", strings.Join(rest, " ")), Usage: usage()}
	}
	if raw.Once && raw.ScheduleOnly {
		return nil, "", &UsageError{Err: errors.New("--once and --schedule-only are mutually exclusive"), Usage: usage()}
	}
	if raw.ClearAll && raw.ClearPartition != nil {
		return nil, "", &UsageError{Err: errors.New("--clear-all and --clear-partition are mutually exclusive"), Usage: usage()}
	}

	cfg := &Cfg{
		DBPath:         raw.DBPath,
		FeedConfig:     raw.FeedConfig,
		PartitionsFile: raw.PartitionsFile,
		KeywordsFile:   raw.KeywordsFile,
		StopwordsFile:  raw.StopwordsFile,
		TelegramToken:  raw.TelegramToken,
		TelegramChatID: raw.TelegramChatID,
		UserAgent:      raw.UserAgent,
		Cookies:        raw.Cookies,
		Once:           raw.Once,
		ScheduleOnly:   raw.ScheduleOnly,
		ClearAll:       raw.ClearAll,
		ClearPartition: raw.ClearPartition,
		MetricsPort:    raw.MetricsPort,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	return cfg, "", nil
}

// loadEnvFile fills unset environment variables from a dotenv file. A
// missing file is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" && timezone != "Local" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
