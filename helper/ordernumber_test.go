package helper

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 30, 0, 0, time.FixedZone("ICT", 7*3600))
	pattern := regexp.MustCompile(`^BB-250307-\d{4}$`)

	for i := 0; i < 50; i++ {
		number := GenerateOrderNumber(now)
		assert.Regexp(t, pattern, number)
	}
}

func TestGenerateOrderNumberUsesDate(t *testing.T) {
	newYear := time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC)
	assert.Regexp(t, `^BB-260101-\d{4}$`, GenerateOrderNumber(newYear))
}
