package handler

import (
	"errors"
	"strconv"
	"time"
	"unicode/utf8"
)

const (
	maxLabelLength = 100
	minTTL         = 60 * time.Second   // 1 minute
	maxTTL         = 7 * 24 * time.Hour // 1 week

	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

func validateLabel(label string) error {
	if utf8.RuneCountInString(label) > maxLabelLength {
		return errors.New("label exceeds maximum length of 100 characters")
	}
	return nil
}

// validateTTLSeconds checks the raw seconds so huge values cannot
// overflow a time.Duration.
func validateTTLSeconds(secs int64) error {
	if secs < int64(minTTL/time.Second) {
		return errors.New("ttl_seconds must be at least 60")
	}
	if secs > int64(maxTTL/time.Second) {
		return errors.New("ttl_seconds must not exceed 604800 (1 week)")
	}
	return nil
}

func parseQRSize(raw string) (int, error) {
	if raw == "" {
		return defaultQRSize, nil
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size < minQRSize || size > maxQRSize {
		return 0, errors.New("size must be an integer between 64 and 1024")
	}
	return size, nil
}
