package rgb565

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrSize is returned when a width or height is missing or is not a positive
// integer.
var ErrSize = errors.New("rgb565: invalid size")

func parseDimension(name, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: missing %s", ErrSize, name)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s %q", ErrSize, name, s)
	}
	return n, nil
}

// ParseSize parses width and height as positive integers.
func ParseSize(width, height string) (int, int, error) {
	w, err := parseDimension("width", width)
	if err != nil {
		return 0, 0, err
	}
	h, err := parseDimension("height", height)
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// SizeFromName returns the width and height suggested by a file name with a
// WIDTHxHEIGHT extension such as "image.64x64". Either value is returned as
// an empty string when it cannot be parsed.
func SizeFromName(name string) (width, height string) {
	ext := strings.TrimPrefix(filepath.Ext(filepath.Base(name)), ".")
	if !strings.Contains(ext, "x") {
		return "", ""
	}

	parts := strings.SplitN(ext, "x", 3)
	if _, err := parseDimension("width", parts[0]); err == nil {
		width = parts[0]
	}
	if _, err := parseDimension("height", parts[1]); err == nil {
		height = parts[1]
	}
	return
}

// SizedName returns name with its extension replaced by WIDTHxHEIGHT.
func SizedName(name string, width, height int) string {
	return fmt.Sprintf("%s.%dx%d", strings.TrimSuffix(name, filepath.Ext(name)), width, height)
}
