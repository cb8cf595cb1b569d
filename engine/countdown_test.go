package engine

import (
	"go-currency-converter/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountdown_Tick(t *testing.T) {
	c := NewCountdown(3)
	var fired []bool
	var remaining []int
	for i := 0; i < 8; i++ {
		var fire bool
		c, fire = c.Tick()
		fired = append(fired, fire)
		remaining = append(remaining, c.Remaining)
	}

	assert.Equal(t, []int{2, 1, 0, 3, 2, 1, 0, 3}, remaining)
	assert.Equal(t, []bool{false, false, false, true, false, false, false, true}, fired)
}

func TestCountdown_Default(t *testing.T) {
	c := NewCountdown(DefaultRefreshSeconds)
	ticks := 0
	for {
		var fire bool
		c, fire = c.Tick()
		ticks++
		if fire {
			break
		}
	}

	assert.Equal(t, 61, ticks)
	assert.Equal(t, 60, c.Remaining)
}

func TestCountdownVisible(t *testing.T) {
	assert.True(t, CountdownVisible(Amounts{From: "100", To: "1911.000"}))
	assert.False(t, CountdownVisible(Amounts{From: "0", To: ""}))
	assert.False(t, CountdownVisible(Amounts{From: "100", To: ""}))
	assert.False(t, CountdownVisible(Amounts{From: "", To: "5"}))
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "$0.00"},
		{"abc", "$0.00"},
		{"0", "$0.00"},
		{"19.11", "$19.11"},
		{"1911.000", "$1,911.00"},
		{"1234567.891", "$1,234,567.89"},
		{"5.028", "$5.03"},
		{"-5", "-$5.00"},
		{"0.125", "$0.13"},
		{"2.625", "$2.63"},
		{"1911.125", "$1,911.13"},
		{"-0.125", "-$0.13"},
		{"1.005", "$1.01"},
		{"1.004999", "$1.00"},
		{"1e22", "$10,000,000,000,000,000,000,000.00"},
		{"-0.001", "-$0.00"},
		{"Infinity", "$∞"},
		{"-Infinity", "-$∞"},
		{"123456789.125", "$123,456,789.13"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.in))
		})
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "19.1100", FormatRate(domain.Rate(19.11)))
	assert.Equal(t, "1.2000", FormatRate(domain.Rate(1.2)))
	assert.Equal(t, "0.0313", FormatRate(domain.Rate(0.03125)))
}
