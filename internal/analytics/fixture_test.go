package analytics

import (
	"time"

	"github.com/okian/iplstats/internal/domain/model"
)

// fixture builds small hand-made datasets for pipeline tests.
type fixture struct {
	matches    []model.Match
	deliveries []model.Delivery
}

func (f *fixture) match(id, season int, venue, team1, team2, winner, result string) *fixture {
	f.matches = append(f.matches, model.Match{
		MatchID:      id,
		Season:       season,
		Date:         time.Date(season, time.April, id, 0, 0, 0, 0, time.UTC),
		Venue:        venue,
		Team1:        team1,
		Team2:        team2,
		TossWinner:   team1,
		TossDecision: model.TossBat,
		Winner:       winner,
		Result:       result,
		Umpire1:      "Aleem Dar",
		Umpire2:      "S Ravi",
	})
	return f
}

func (f *fixture) ball(id, inning, over, ball int, bat, bowl, batsman, bowler string, runs int) *fixture {
	f.deliveries = append(f.deliveries, model.Delivery{
		MatchID:     id,
		Inning:      inning,
		Over:        over,
		Ball:        ball,
		BattingTeam: bat,
		BowlingTeam: bowl,
		Batsman:     batsman,
		NonStriker:  "Partner",
		Bowler:      bowler,
		BatsmanRuns: runs,
		TotalRuns:   runs,
	})
	return f
}

func (f *fixture) wide(id, inning, over, ball int, bat, bowl, batsman, bowler string) *fixture {
	f.ball(id, inning, over, ball, bat, bowl, batsman, bowler, 0)
	d := &f.deliveries[len(f.deliveries)-1]
	d.WideRuns, d.ExtraRuns, d.TotalRuns = 1, 1, 1
	return f
}

// out marks the last delivery as a dismissal of its batsman.
func (f *fixture) out(kind, fielders string) *fixture {
	d := &f.deliveries[len(f.deliveries)-1]
	d.PlayerDismissed = d.Batsman
	d.DismissalKind = kind
	d.DismissalFielders = fielders
	return f
}

func (f *fixture) build() *Dataset {
	return NewDataset(f.matches, f.deliveries)
}

// leagueFixture is three matches across two seasons:
// 1. Kolkata beat Mumbai at Eden Gardens (2017).
// 2. Mumbai vs Kolkata at "Eden Gardens, Kolkata" was washed out (2017).
// 3. Chennai beat Kolkata in the 2018 final at Wankhede.
func leagueFixture() *Dataset {
	const kkr, mi, csk = "Kolkata Knight Riders", "Mumbai Indians", "Chennai Super Kings"
	f := &fixture{}
	f.match(1, 2017, "Eden Gardens", kkr, mi, kkr, "normal").
		match(2, 2017, "Eden Gardens, Kolkata", mi, kkr, "", "No result").
		match(3, 2018, "Wankhede Stadium", kkr, csk, csk, "Final")

	// match 1: KKR 14/1 in two overs, MI 9/2 in reply
	f.ball(1, 1, 1, 1, kkr, mi, "G Gambhir", "JJ Bumrah", 4).
		ball(1, 1, 1, 2, kkr, mi, "G Gambhir", "JJ Bumrah", 1).
		ball(1, 1, 1, 3, kkr, mi, "CA Lynn", "JJ Bumrah", 6).
		ball(1, 1, 1, 4, kkr, mi, "CA Lynn", "JJ Bumrah", 0).out("caught", "KA Pollard").
		wide(1, 1, 16, 1, kkr, mi, "G Gambhir", "MJ McClenaghan").
		ball(1, 1, 16, 1, kkr, mi, "G Gambhir", "MJ McClenaghan", 2).
		ball(1, 2, 1, 1, mi, kkr, "RG Sharma", "SP Narine", 4).
		ball(1, 2, 1, 2, mi, kkr, "RG Sharma", "SP Narine", 0).out("bowled", "").
		ball(1, 2, 1, 3, mi, kkr, "KA Pollard", "SP Narine", 1).
		ball(1, 2, 1, 4, mi, kkr, "KA Pollard", "SP Narine", 4).
		ball(1, 2, 2, 1, mi, kkr, "KA Pollard", "Kuldeep Yadav", 0).out("run out", "RV Uthappa")

	// match 3: CSK chase down KKR
	f.ball(3, 1, 1, 1, kkr, csk, "G Gambhir", "DL Chahar", 1).
		ball(3, 1, 1, 2, kkr, csk, "CA Lynn", "DL Chahar", 6).
		ball(3, 2, 1, 1, csk, kkr, "MS Dhoni", "SP Narine", 6).
		ball(3, 2, 1, 2, csk, kkr, "MS Dhoni", "SP Narine", 2)
	return f.build()
}
