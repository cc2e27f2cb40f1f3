package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvInt(t *testing.T) {
	t.Setenv("BOOKING_TEST_INT", "12")
	assert.Equal(t, 12, GetEnvInt("BOOKING_TEST_INT", 3))

	t.Setenv("BOOKING_TEST_INT", "twelve")
	assert.Equal(t, 3, GetEnvInt("BOOKING_TEST_INT", 3))

	assert.Equal(t, 3, GetEnvInt("BOOKING_TEST_INT_UNSET", 3))
}

func TestGetEnvStringSlice(t *testing.T) {
	t.Setenv("BOOKING_TEST_ORIGINS", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetEnvStringSlice("BOOKING_TEST_ORIGINS", nil))

	assert.Equal(t, []string{"*"}, GetEnvStringSlice("BOOKING_TEST_ORIGINS_UNSET", []string{"*"}))
}
