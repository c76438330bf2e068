package api

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is DD.MM.YYYY, the wire format for birthday and date fields.
const dateLayout = "02.01.2006"

// maxAgeYears bounds the birthday field.
const maxAgeYears = 70

func validatePhone(value string) error {
	if len(value) != 11 || !strings.HasPrefix(value, "7") {
		return fmt.Errorf("phone must be a valid phone number")
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return fmt.Errorf("phone must be a valid phone number")
		}
	}
	return nil
}

func validateEmail(value string) error {
	if !strings.Contains(value, "@") {
		return fmt.Errorf("email must be a valid email")
	}
	return nil
}

func parseDate(name, value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a valid date", name)
	}
	return d, nil
}

func validateBirthday(value string, now time.Time) error {
	d, err := parseDate("birthday", value)
	if err != nil {
		return err
	}
	if d.Year() <= now.Year()-maxAgeYears {
		return fmt.Errorf("birthday must be less than %d years old", maxAgeYears)
	}
	return nil
}

func validateGender(value int) error {
	if value < 0 || value > 2 {
		return fmt.Errorf("gender must be 0, 1 or 2")
	}
	return nil
}
