// Package scoring holds the derived cricket metrics. Every function is pure
// and total: zero denominators yield 0 (or the documented fallback), never
// NaN or Inf.
package scoring

import (
	"math"
)

// Impact weights.
const (
	// LeagueAvgEconomy is the fixed reference economy the bowling impact
	// bonus is measured against.
	LeagueAvgEconomy = 8.0

	StrikeRateBonusFactor = 0.2
	FourBonus             = 2.0
	SixBonus              = 3.0
	DeathRunsBonus        = 1.5
	WicketValue           = 20.0
	EconomyBonusFactor    = 10.0
	DeathWicketBonus      = 10.0

	ballsPerOver = 6
)

// StrikeRate is runs per 100 balls.
func StrikeRate(runs, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(runs) / float64(balls) * 100
}

// Economy is runs conceded per six balls.
func Economy(runs, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(runs) / float64(balls) * ballsPerOver
}

// BattingAverage is runs per dismissal; with no dismissals it is the runs
// themselves.
func BattingAverage(runs, wickets int) float64 {
	if wickets <= 0 {
		return float64(runs)
	}
	return float64(runs) / float64(wickets)
}

// WinPercentage is wins over matches as a rounded whole percentage.
func WinPercentage(wins, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(wins) / float64(total) * 100)
}

// Ratio is a/b, 0 when b is 0.
func Ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// Overs converts a ball count to decimal overs (balls/6), 1 decimal.
func Overs(balls int) float64 {
	return Round1(float64(balls) / ballsPerOver)
}

// ChaseStatus describes where a run chase stands.
type ChaseStatus string

// Chase states reported alongside the required run rate.
const (
	Chasing          ChaseStatus = "chasing"
	ChaseCompleted   ChaseStatus = "chase_completed"
	NoBallsRemaining ChaseStatus = "no_balls_remaining"
)

// RequiredRunRate returns runs needed per over to reach target+1 from
// current with ballsRemaining legal balls left.
func RequiredRunRate(target, current, ballsRemaining int) (float64, ChaseStatus) {
	needed := target + 1 - current
	if needed <= 0 {
		return 0, ChaseCompleted
	}
	if ballsRemaining <= 0 {
		return 0, NoBallsRemaining
	}
	return float64(needed) / float64(ballsRemaining) * ballsPerOver, Chasing
}

// BattingLine is the counters a batting impact is computed from.
type BattingLine struct {
	Runs      int
	Balls     int
	Fours     int
	Sixes     int
	DeathRuns int
}

// BattingComponents breaks the batting impact into its additive terms.
type BattingComponents struct {
	Base            float64 `json:"base"`
	SRBonus         float64 `json:"srBonus"`
	BoundariesBonus float64 `json:"boundariesBonus"`
	ClutchBonus     float64 `json:"clutchBonus"`
	Total           float64 `json:"total"`
}

// BattingImpact computes runs + runs*(SR/100)*0.2 + 4s*2 + 6s*3 + deathRuns*1.5.
func BattingImpact(l BattingLine) BattingComponents {
	sr := StrikeRate(l.Runs, l.Balls)
	c := BattingComponents{
		Base:            float64(l.Runs),
		SRBonus:         float64(l.Runs) * (sr / 100) * StrikeRateBonusFactor,
		BoundariesBonus: float64(l.Fours)*FourBonus + float64(l.Sixes)*SixBonus,
		ClutchBonus:     float64(l.DeathRuns) * DeathRunsBonus,
	}
	c.Total = c.Base + c.SRBonus + c.BoundariesBonus + c.ClutchBonus
	return c
}

// SimpleBattingImpact is the league leaderboard variant: runs + 4s*2 + 6s*3.
func SimpleBattingImpact(runs, fours, sixes int) float64 {
	return float64(runs) + float64(fours)*FourBonus + float64(sixes)*SixBonus
}

// BowlingLine is the counters a bowling impact is computed from.
type BowlingLine struct {
	Wickets      int
	Runs         int
	Balls        int
	DeathWickets int
}

// BowlingComponents breaks the bowling impact into its additive terms.
type BowlingComponents struct {
	BaseWickets       float64 `json:"baseWickets"`
	EconomyBonus      float64 `json:"economyBonus"`
	DeathWicketsBonus float64 `json:"deathWicketsBonus"`
	Total             float64 `json:"total"`
}

// BowlingImpact computes wickets*20 + (8.0-economy)*10 + deathWickets*10.
// A player who never bowled scores 0 rather than a free economy bonus.
func BowlingImpact(l BowlingLine) BowlingComponents {
	if l.Balls <= 0 {
		return BowlingComponents{}
	}
	c := BowlingComponents{
		BaseWickets:       float64(l.Wickets) * WicketValue,
		EconomyBonus:      (LeagueAvgEconomy - Economy(l.Runs, l.Balls)) * EconomyBonusFactor,
		DeathWicketsBonus: float64(l.DeathWickets) * DeathWicketBonus,
	}
	c.Total = c.BaseWickets + c.EconomyBonus + c.DeathWicketsBonus
	return c
}

// TeamContextImpact is runs + wickets*20.
func TeamContextImpact(runs, wickets int) float64 {
	return float64(runs) + float64(wickets)*WicketValue
}

// RoundInt rounds half away from zero to a whole number.
func RoundInt(v float64) float64 { return roundTo(v, 1) }

// Round1 rounds half away from zero to one decimal.
func Round1(v float64) float64 { return roundTo(v, 10) }

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 { return roundTo(v, 100) }

func roundTo(v, scale float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*scale) / scale
}

// Rounded applies Round1 to each component.
func (c BattingComponents) Rounded() BattingComponents {
	return BattingComponents{
		Base:            Round1(c.Base),
		SRBonus:         Round1(c.SRBonus),
		BoundariesBonus: Round1(c.BoundariesBonus),
		ClutchBonus:     Round1(c.ClutchBonus),
		Total:           Round1(c.Total),
	}
}

// Rounded applies Round1 to each component.
func (c BowlingComponents) Rounded() BowlingComponents {
	return BowlingComponents{
		BaseWickets:       Round1(c.BaseWickets),
		EconomyBonus:      Round1(c.EconomyBonus),
		DeathWicketsBonus: Round1(c.DeathWicketsBonus),
		Total:             Round1(c.Total),
	}
}
