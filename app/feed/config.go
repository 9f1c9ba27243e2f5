package feed

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultURL                   = "https://www.fl.ru/rss/all.xml?category=" + PartitionPlaceholder
	DefaultTimeout               = 10
	DefaultMinPartition          = 1
	DefaultMaxPartition          = 42
	DefaultAlwaysNotifyPartition = 5
	DefaultDescriptionLimit      = 300
	DefaultMinDelay              = 3
	DefaultMaxDelay              = 7
	DefaultPollInterval          = 60
)

var DefaultScheduleTimes = []string{"09:00", "11:00", "13:00", "15:00", "17:00"}

var timeOfDayPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// LoadConfig reads the YAML feed configuration. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	var feedConfig Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Debug("Feed configuration not found, using defaults", "path", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &feedConfig); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	applyDefaults(&feedConfig)

	if err := validateConfig(&feedConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &feedConfig, nil
}

// PartitionURL returns the feed URL of a partition
func (c *Config) PartitionURL(partitionID int) string {
	return strings.ReplaceAll(c.URL, PartitionPlaceholder, strconv.Itoa(partitionID))
}

func (c *Config) PartitionRange() PartitionRange {
	return PartitionRange{Min: c.Settings.MinPartition, Max: c.Settings.MaxPartition}
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Settings.Timeout) * time.Second
}

func (c *Config) DelayBounds() (time.Duration, time.Duration) {
	return time.Duration(c.Settings.MinDelay) * time.Second, time.Duration(c.Settings.MaxDelay) * time.Second
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Schedule.PollInterval) * time.Second
}

func applyDefaults(feedConfig *Config) {
	if feedConfig.URL == "" {
		feedConfig.URL = DefaultURL
	}
	if feedConfig.Settings.Timeout == 0 {
		feedConfig.Settings.Timeout = DefaultTimeout
	}
	if feedConfig.Settings.MinPartition == 0 && feedConfig.Settings.MaxPartition == 0 {
		feedConfig.Settings.MinPartition = DefaultMinPartition
		feedConfig.Settings.MaxPartition = DefaultMaxPartition
	}
	if feedConfig.Settings.AlwaysNotifyPartition == 0 {
		feedConfig.Settings.AlwaysNotifyPartition = DefaultAlwaysNotifyPartition
	}
	if feedConfig.Settings.DescriptionLimit == 0 {
		feedConfig.Settings.DescriptionLimit = DefaultDescriptionLimit
	}
	if feedConfig.Settings.MinDelay == 0 && feedConfig.Settings.MaxDelay == 0 {
		feedConfig.Settings.MinDelay = DefaultMinDelay
		feedConfig.Settings.MaxDelay = DefaultMaxDelay
	}
	if len(feedConfig.Schedule.Times) == 0 {
		feedConfig.Schedule.Times = append([]string(nil), DefaultScheduleTimes...)
	}
	if feedConfig.Schedule.PollInterval == 0 {
		feedConfig.Schedule.PollInterval = DefaultPollInterval
	}
}

func validateConfig(feedConfig *Config) error {
	if feedConfig == nil {
		return fmt.Errorf("feedConfig is nil")
	}

	if !strings.Contains(feedConfig.URL, PartitionPlaceholder) {
		return fmt.Errorf("feed URL must contain %s", PartitionPlaceholder)
	}

	nonNegativeFields := map[string]int{
		"timeout":           feedConfig.Settings.Timeout,
		"min partition":     feedConfig.Settings.MinPartition,
		"max partition":     feedConfig.Settings.MaxPartition,
		"description limit": feedConfig.Settings.DescriptionLimit,
		"min delay":         feedConfig.Settings.MinDelay,
		"max delay":         feedConfig.Settings.MaxDelay,
		"poll interval":     feedConfig.Schedule.PollInterval,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	if feedConfig.Settings.MaxPartition < feedConfig.Settings.MinPartition {
		return fmt.Errorf("max partition must not be less than min partition")
	}
	if feedConfig.Settings.MaxDelay < feedConfig.Settings.MinDelay {
		return fmt.Errorf("max delay must not be less than min delay")
	}

	for i, at := range feedConfig.Schedule.Times {
		if !timeOfDayPattern.MatchString(at) {
			return fmt.Errorf("invalid schedule time at index %d: %q", i, at)
		}
	}

	return nil
}
