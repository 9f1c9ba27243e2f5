package feed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// LoadPartitions reads the partition list file. An absent file or one with
// no usable entries selects the whole range.
func LoadPartitions(path string, allowed PartitionRange) ([]int, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("Partition list not found, using full range", "path", path, "min", allowed.Min, "max", allowed.Max)
		return allowed.All(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open partition list: %w", err)
	}
	defer file.Close()

	return ParsePartitions(file, allowed)
}

// ParsePartitions reads newline-delimited partition ids. Blank and '#'
// lines are ignored; non-integers and out-of-range ids are skipped with a
// warning. The result is sorted and unique.
func ParsePartitions(r io.Reader, allowed PartitionRange) ([]int, error) {
	var candidates []int

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		id, err := strconv.Atoi(line)
		if err != nil {
			slog.Warn("Skipping invalid partition entry", "line", lineNumber, "value", line)
			continue
		}
		candidates = append(candidates, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read partition list: %w", err)
	}

	if len(candidates) == 0 {
		return allowed.All(), nil
	}

	selected := lo.Filter(lo.Uniq(candidates), func(id int, _ int) bool {
		if !allowed.Contains(id) {
			slog.Warn("Skipping out-of-range partition", "partition", id, "min", allowed.Min, "max", allowed.Max)
			return false
		}
		return true
	})
	slices.Sort(selected)

	return selected, nil
}
