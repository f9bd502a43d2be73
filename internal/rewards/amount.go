package rewards

import (
	"math"
	"math/rand/v2"
)

// Economy constants.
const (
	DefaultDailyCap = 500
	MinAward        = 5

	DailyLoginMin       = 5
	DailyLoginMax       = 50
	DailyLoginIncrement = 7

	JackpotProbability = 0.001
)

// StreakMultiplier returns the reward multiplier for a rolling login
// streak: 1.0 for days 1-3, 1.5 for days 4-6, 2.0 from day 7 on.
func StreakMultiplier(days int) float64 {
	switch {
	case days >= 7:
		return 2.0
	case days >= 4:
		return 1.5
	default:
		return 1.0
	}
}

// DailyLoginBase returns the daily login base amount for a streak: 5 on
// day one, growing by 7 per day up to 50.
func DailyLoginBase(days int) int {
	if days < 1 {
		days = 1
	}
	return min(DailyLoginMin+DailyLoginIncrement*(days-1), DailyLoginMax)
}

// ScaleAmount applies the multiplier to base, rounds half away from zero,
// floors the result at MinAward and applies maxAmount when positive. A
// zero base stays zero.
func ScaleAmount(base int, multiplier float64, maxAmount int) int {
	if base <= 0 {
		return 0
	}
	amount := max(int(math.Round(float64(base)*multiplier)), MinAward)
	if maxAmount > 0 {
		amount = min(amount, maxAmount)
	}
	return amount
}

// ClampToCap limits a capped claim to what is left of the daily cap.
func ClampToCap(amount, earnedToday, dailyCap int) int {
	if earnedToday+amount <= dailyCap {
		return amount
	}
	return max(0, dailyCap-earnedToday)
}

// RollJackpot reports whether a jackpot hits on r.
func RollJackpot(r *rand.Rand) bool {
	return r.Float64() < JackpotProbability
}
