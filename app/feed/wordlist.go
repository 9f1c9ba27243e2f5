package feed

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	KeywordsSection  = "keywords"
	StopwordsSection = "stopwords"
)

// LoadWordList reads phrases from the given INI section. Files without that
// section are read as one phrase per line, skipping blank, '#' and '['
// lines. A missing file yields an empty list.
func LoadWordList(path, section string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("Word list file not found", "path", path, "section", section)
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	words, err := parseINISection(data, section)
	if err != nil {
		slog.Debug("Word list is not valid INI, reading plain lines", "path", path, "error", err)
	}
	if len(words) == 0 {
		words = parsePlainLines(data)
	}

	slog.Debug("Word list loaded", "path", path, "section", section, "count", len(words))

	return words, nil
}

func parseINISection(data []byte, section string) ([]string, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		AllowBooleanKeys:        true,
		InsensitiveSections:     true,
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI: %w", err)
	}

	if !file.HasSection(section) {
		return nil, nil
	}

	var words []string
	for _, key := range file.Section(section).Keys() {
		value := strings.TrimSpace(key.Value())
		switch value {
		case "":
		case "true":
			// bare phrase without a key
			words = append(words, strings.TrimSpace(key.Name()))
		default:
			words = append(words, value)
		}
	}
	return words, nil
}

func parsePlainLines(data []byte) []string {
	words := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "[") {
			continue
		}
		words = append(words, line)
	}
	return words
}
