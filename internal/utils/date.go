package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDateOfBirth converts a day/month/year slash-delimited date, as the
// registration form submits it, into the YYYY-MM-DD form the database stores.
// Single-digit days and months are zero-padded.
func FormatDateOfBirth(dob string) (string, error) {
	parts := strings.Split(dob, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid date of birth %q: expected DD/MM/YYYY", dob)
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || day < 1 || day > 31 {
		return "", fmt.Errorf("invalid day in date of birth %q", dob)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || month < 1 || month > 12 {
		return "", fmt.Errorf("invalid month in date of birth %q", dob)
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || year < 1000 || year > 9999 {
		return "", fmt.Errorf("invalid year in date of birth %q", dob)
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}
