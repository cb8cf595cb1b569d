package engine

// DefaultRefreshSeconds how long a quote is shown before it is refetched
const DefaultRefreshSeconds = 60

// Countdown the visible refresh timer, advanced once per second by its owner
type Countdown struct {
	Initial   int
	Remaining int
}

// NewCountdown starts a countdown at initial
func NewCountdown(initial int) Countdown {
	return Countdown{Initial: initial, Remaining: initial}
}

// Tick advances the countdown by one second. Once it has reached zero the next tick reports
// that a refresh is due and resets to the initial value.
func (c Countdown) Tick() (Countdown, bool) {
	if c.Remaining > 0 {
		c.Remaining--
		return c, false
	}
	c.Remaining = c.Initial
	return c, true
}

// CountdownVisible the countdown is only shown, and only runs, while both amounts are present
func CountdownVisible(a Amounts) bool {
	return present(a.From) && present(a.To)
}
