package render_test

import (
	"testing"
	"time"

	"github.com/fwojciec/ficbot/render"
	"github.com/stretchr/testify/assert"
)

func TestRelativeDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"within a week", time.Date(2024, time.March, 8, 15, 0, 0, 0, time.UTC), "Fri at 3 pm UTC"},
		{"morning", time.Date(2024, time.March, 9, 9, 30, 0, 0, time.UTC), "Sat at 9 am UTC"},
		{"converts to UTC", time.Date(2024, time.March, 8, 10, 0, 0, 0, time.FixedZone("EST", -5*3600)), "Fri at 3 pm UTC"},
		{"within a year", time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC), "3rd Feb"},
		{"teens use th", time.Date(2023, time.December, 12, 0, 0, 0, 0, time.UTC), "12th Dec"},
		{"older", time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC), "1st Feb, 2020"},
		{"twenty second", time.Date(2019, time.June, 22, 0, 0, 0, 0, time.UTC), "22nd Jun, 2019"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, render.RelativeDate(tt.t, now))
		})
	}
}

func TestApprox(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1000, "1k"},
		{1234, "1.2k"},
		{9999, "10k"},
		{12345, "12k"},
		{999999, "1m"},
		{1680000, "1.7m"},
		{3400000000, "3.4b"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, render.Approx(tt.n), "Approx(%d)", tt.n)
	}
}

func TestChapters(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 chapter", render.Chapters(1))
	assert.Equal(t, "0 chapters", render.Chapters(0))
	assert.Equal(t, "12 chapters", render.Chapters(12))
}
