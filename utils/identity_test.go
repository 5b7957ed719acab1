package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNationalID(t *testing.T) {
	assert.Equal(t, "4210112345671", NormalizeNationalID("42101-1234567-1"))
	assert.Equal(t, "4210112345671", NormalizeNationalID("4210112345671"))
	assert.Equal(t, "4210112345671", NormalizeNationalID(" 42101 1234567 1 "))
	assert.Equal(t, "", NormalizeNationalID(""))
	assert.Equal(t, "", NormalizeNationalID("no-digits"))
}

func TestNormalizePhone(t *testing.T) {
	// international forms collapse to the domestic number
	assert.Equal(t, "03001234567", NormalizePhone("+923001234567"))
	assert.Equal(t, "03001234567", NormalizePhone("0092 300 1234567"))
	assert.Equal(t, "03001234567", NormalizePhone("92-300-1234567"))

	// domestic forms are preserved
	assert.Equal(t, "03001234567", NormalizePhone("0300-1234567"))
	assert.Equal(t, "03001234567", NormalizePhone("03001234567"))

	// a bare 10-digit local number gains the trunk zero
	assert.Equal(t, "03001234567", NormalizePhone("3001234567"))

	// the country prefix is stripped regardless of length
	assert.Equal(t, "1234567", NormalizePhone("921234567"))
	assert.Equal(t, "345678901", NormalizePhone("92345678901"))

	assert.Equal(t, "", NormalizePhone(""))
}

func TestIdentityKeys(t *testing.T) {
	assert.Equal(t, "nid:4210112345671", NationalIDKey("4210112345671"))
	assert.Equal(t, "phone:03001234567", PhoneKey("03001234567"))
	assert.Equal(t, "", NationalIDKey(""))
	assert.Equal(t, "", PhoneKey(""))
}
