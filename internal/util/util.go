package util

import (
	"fmt"
	"strings"

	"github.com/labstack/gommon/bytes"
	"github.com/pkg/errors"
)

// ParseSize converts a human readable size such as "5MB" into bytes.
func ParseSize(size string) (int64, error) {
	parsed, err := bytes.Parse(strings.TrimSpace(size))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid size %q", size)
	}
	if parsed <= 0 {
		return 0, errors.Errorf("size must be positive: %q", size)
	}

	return parsed, nil
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}
