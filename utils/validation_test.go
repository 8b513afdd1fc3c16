package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("nguyen.van.a+shop@gmail.com"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("user@"))
	assert.False(t, ValidateEmail("@example.com"))
	assert.False(t, ValidateEmail(""))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("0912345678"))
	assert.True(t, ValidatePhone("+84912345678"))
	assert.False(t, ValidatePhone("12345"))
	assert.False(t, ValidatePhone("091234567a"))
	assert.False(t, ValidatePhone(""))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Passw0rd"))
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("onlyletters"))
	assert.Error(t, ValidatePassword("12345678"))
}

func TestValidateSlug(t *testing.T) {
	assert.True(t, ValidateSlug("ao-thun-nam"))
	assert.True(t, ValidateSlug("tui-xach-2024"))
	assert.False(t, ValidateSlug("Ao-Thun"))
	assert.False(t, ValidateSlug("ao--thun"))
	assert.False(t, ValidateSlug("-ao-thun"))
	assert.False(t, ValidateSlug(""))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "ao-thun-nam", Slugify("Ao Thun Nam"))
	assert.Equal(t, "tui-xach-2024", Slugify("  Tui Xach 2024  "))
	assert.Equal(t, "giay-sneaker", Slugify("Giay / Sneaker!"))
}
