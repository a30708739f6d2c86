package service

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultPhoneRegion = "IN"

// formatPhone returns a display form and a tel: target for a free-form phone
// number. Numbers that do not parse are shown as typed.
func formatPhone(raw string) (display, link string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}

	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw, strings.Map(keepDialable, raw)
	}

	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL), phonenumbers.Format(num, phonenumbers.E164)
}

func keepDialable(r rune) rune {
	if (r >= '0' && r <= '9') || r == '+' {
		return r
	}
	return -1
}
