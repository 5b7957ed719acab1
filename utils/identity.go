package utils

import "strings"

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeNationalID strips everything but digits, so "42101-1234567-1"
// and "4210112345671" compare equal.
func NormalizeNationalID(v string) string {
	return digitsOnly(v)
}

// NormalizePhone canonicalizes a mobile number: strip non-digits, collapse
// the international prefix ("0092" / "92"), and left-pad a bare 10-digit
// local number with the domestic trunk zero. "+923001234567" and
// "03001234567" both normalize to "03001234567".
func NormalizePhone(v string) string {
	d := digitsOnly(v)
	if strings.HasPrefix(d, "0092") {
		d = d[4:]
	}
	if strings.HasPrefix(d, "92") {
		d = d[2:]
	}
	if len(d) == 10 {
		d = "0" + d
	}
	return d
}

// Identity key prefixes. National-ID keys are preferred over phone keys.
const (
	KeyPrefixNationalID = "nid:"
	KeyPrefixPhone      = "phone:"
)

// NationalIDKey builds the rate-book key for a normalized national-ID.
func NationalIDKey(norm string) string {
	if norm == "" {
		return ""
	}
	return KeyPrefixNationalID + norm
}

// PhoneKey builds the rate-book key for a normalized phone.
func PhoneKey(norm string) string {
	if norm == "" {
		return ""
	}
	return KeyPrefixPhone + norm
}
