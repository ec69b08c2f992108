package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/iplstats/internal/analytics"
	service "github.com/okian/iplstats/internal/app"
	"github.com/okian/iplstats/internal/domain/types"
)

// ErrUnknownReport is returned for a report type with no renderer.
var ErrUnknownReport = errors.New("unknown report")

type reportFunc func(ctx context.Context, svc *service.Service, f analytics.Filter) (rendered, error)

// reportTypes maps the report argument to its renderer.
var reportTypes = map[string]struct {
	short string
	run   reportFunc
}{
	"teams":       {"Win and loss record of every team", teamsReport},
	"top-batsmen": {"Highest run scorers (--limit)", topBatsmenReport},
	"headtohead":  {"Results between --team and --opponent", headToHeadReport},
	"phase":       {"Powerplay, middle and death split (--team, --player, --season)", phaseTable},
	"venue":       {"Venue metrics (--venue, --season)", venueReport},
	"impact":      {"Impact index (--player, --team or league; --season, --limit)", impactReport},
	"rival":       {"Batsman against bowler (--player, --bowler, --season)", rivalReport},
	"season":      {"Season summary (--season)", seasonReport},
	"milestones":  {"Record book (--season)", milestonesReport},
	"umpires":     {"Umpires by matches officiated", umpiresReport},
}

func reportNames() []string {
	names := make([]string, 0, len(reportTypes))
	for n := range reportTypes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func newReportCommand(env *runtimeEnv) *cobra.Command {
	var (
		f       analytics.Filter
		asJSON  bool
		noColor bool
	)
	var long strings.Builder
	long.WriteString("Print one report as terminal tables. Types:\n")
	for _, n := range reportNames() {
		_, _ = fmt.Fprintf(&long, "  %-12s %s\n", n, reportTypes[n].short)
	}

	cmd := &cobra.Command{
		Use:       "report <type>",
		Short:     "Print a report in the terminal",
		Long:      long.String(),
		Args:      cobra.ExactArgs(1),
		ValidArgs: reportNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, ok := reportTypes[args[0]]
			if !ok {
				return fmt.Errorf("%w: %q (one of %s)", ErrUnknownReport, args[0], strings.Join(reportNames(), ", "))
			}
			ctx := cmd.Context()
			svc, stop, err := startService(ctx, env.cfg)
			if err != nil {
				return err
			}
			defer stop()

			rep, err := rt.run(ctx, svc, f)
			if err != nil {
				return err
			}
			if asJSON {
				return renderJSON(cmd.OutOrStdout(), rep.Raw)
			}
			return newRenderer(cmd.OutOrStdout(), noColor).render(rep)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.Team, "team", "", "Team name")
	fl.StringVar(&f.Opponent, "opponent", "", "Opposing team for headtohead")
	fl.StringVar(&f.Player, "player", "", "Player or batsman name")
	fl.StringVar(&f.Bowler, "bowler", "", "Bowler name for rival")
	fl.StringVar(&f.Venue, "venue", "", "Venue name")
	fl.IntVar(&f.Season, "season", 0, "Season year (0 for all)")
	fl.IntVar(&f.Limit, "limit", 0, "Row limit")
	fl.BoolVar(&asJSON, "json", false, "Print JSON instead of tables")
	fl.BoolVar(&noColor, "no-color", false, "Disable colour even on a terminal")
	return cmd
}

func teamsReport(ctx context.Context, svc *service.Service, f analytics.Filter) (rendered, error) {
	teams, err := svc.Teams(ctx, f)
	if err != nil {
		return rendered{}, err
	}
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []string{t.Name, itoa(t.TotalMatches), itoa(t.TotalWins), pct(t.WinPercentage),
			fmt.Sprintf("%d-%d", t.FirstSeason, t.LastSeason)})
	}
	return rendered{
		Title:    "Teams",
		Sections: []section{{Headers: []string{"Team", "Matches", "Wins", "Win %", "Seasons"}, Rows: rows}},
		Raw:      teams,
	}, nil
}

func topBatsmenReport(ctx context.Context, svc *service.Service, f analytics.Filter) (rendered, error) {
	players, err := svc.TopBatsmen(ctx, f)
	if err != nil {
		return rendered{}, err
	}
	rows := make([][]string, 0, len(players))
	for i, p := range players {
		rows = append(rows, []string{itoa(i + 1), p.Name, p.Team, itoa(p.TotalRuns), itoa(p.BallsFaced), ftoa(p.StrikeRate), itoa(p.Matches)})
	}
	return rendered{
		Title:    "Top batsmen",
		Sections: []section{{Headers: []string{"#", "Player", "Team", "Runs", "Balls", "SR", "Matches"}, Rows: rows}},
		Raw:      players,
	}, nil
}

func headToHeadReport(ctx context.Context, svc *service.Service, f analytics.Filter) (rendered, error) {
	h, err := svc.HeadToHead(ctx, f)
	if err != nil {
		return rendered{}, err
	}
	return rendered{
		Title: fmt.Sprintf("%s v %s (%s)", h.Team1, h.Team2, h.Season),
		Sections: []section{{
			Headers: []string{"Matches", h.Team1, h.Team2, "Tied/NR"},
			Rows:    [][]string{{itoa(h.TotalMatchesBetween), itoa(h.WinsTeam1), itoa(h.WinsTeam2), itoa(h.TiesOrNoResult)}},
		}},
		Raw: h,
	}, nil
}

func phaseTable(ctx context.Context, svc *service.Service, f analytics.Filter) (rendered, error) {
	r, err := svc.Phase(ctx, f)
	if err != nil {
		return rendered{}, err
	}
	subject := "League"
	switch r.Mode {
	case types.PhaseModeTeamPlayer:
		subject = r.Player + " for " + r.Team
	case types.PhaseModeTeam:
		subject = r.Team
	case types.PhaseModePlayer:
		subject = r.Player
	}
	out := rendered{Title: fmt.Sprintf("Phase analysis: %s, %s", subject, r.Season), Raw: r}

	if r.Mode == types.PhaseModeLeague {
		rows := make([][]string, 0, len(r.LeagueStats))
		for _, p := range r.LeagueStats {
			rows = append(rows, []string{string(p.Phase), itoa(p.TotalRuns), itoa(p.TotalBalls), itoa(p.TotalWickets),
				itoa(p.Boundaries), ftoa(p.AvgRunRate), ftoa(p.WicketRate)})
		}
		out.Sections = []section{{Headers: []string{"Phase", "Runs", "Balls", "Wickets", "Boundaries", "Run rate", "Wkt rate"}, Rows: rows}}
		return out, nil
	}
	if r.Batting != nil {
		rows := make([][]string, 0, len(r.Batting))
		for _, p := range r.Batting {
			rows = append(rows, []string{string(p.Phase), itoa(p.RunsScored), itoa(p.BallsFaced), itoa(p.Fours), itoa(p.Sixes),
				itoa(p.WicketsLost), ftoa(p.StrikeRate), ftoa(p.Avg)})
		}
		out.Sections = append(out.Sections, section{Title: "Batting", Headers: []string{"Phase", "Runs", "Balls", "4s", "6s", "Out", "SR", "Avg"}, Rows: rows})
	}
	if r.Bowling != nil {
		rows := make([][]string, 0, len(r.Bowling))
		for _, p := range r.Bowling {
			rows = append(rows, []string{string(p.Phase), itoa(p.RunsConceded), itoa(p.BallsBowled), itoa(p.WicketsTaken), ftoa(p.Economy)})
		}
		out.Sections = append(out.Sections, section{Title: "Bowling", Headers: []string{"Phase", "Runs", "Balls", "Wickets", "Econ"}, Rows: rows})
	}
	return out, nil
}

func venueReport(ctx context.Context, svc *service.Service, f analytics.Filter) (rendered, error) {
	v, err := svc.VenueMetrics(ctx, f)
	if err != nil {
		return rendered{}, err
	}
	overview := [][]string{
		{"Matches", itoa(v.TotalMatches)},
		{"Avg 1st innings", ftoa(v.AvgFirstInnings)},
		{"Avg 2nd innings", ftoa(v.AvgSecondInnings)},
		{"Team 1 win ratio", ftoa(v.WinPctBatFirst)},
		{"Team 2 win ratio", ftoa(v.WinPctChase)},
		{"Bat first win %", pct(v.BatFirstWinPct)},
		{"Toss: bat / field", fmt.Sprintf("%d / %d", v.TossDecisionCounts.Bat, v.TossDecisionCounts.Field)},
	}
	teams := make([][]string, 0, len(v.TopTeams))
	for _, t := range v.TopTeams {
		teams = append(teams, []string{t.Team, itoa(t.Wins)})
	}
	bats := make([][]string, 0, len(v.TopBatsmen))
	for _, b := range v.TopBatsmen {
		bats = append(bats, []string{b.Player, itoa(b.Runs)})
	}
	bowls := make([][]string, 0, len(v.TopBowlers))
	for _, b := range v.TopBowlers {
		bowls = append(bowls, []string{b.Player, itoa(b.Wickets), itoa(b.Runs), ftoa(b.Economy)})
	}
	return rendered{
		Title: fmt.Sprintf("%s, %s", v.Venue, v.Season),
		Sections: []section{
			{Headers: []string{"Metric", "Value"}, Rows: overview},
			{Title: "Top teams", Headers: []string{"Team", "Wins"}, Rows: teams},
			{Title: "Top batsmen", Headers: []string{"Player", "Runs"}, Rows: bats},
			{Title: "Top bowlers", Headers: []string{"Player", "Wickets", "Runs", "Econ"}, Rows: bowls},
		},
		Raw: v,
	}, nil
}

func impactReport(ctx context.Context, svc *service.Service, f analytics.Filter) (rendered, error) {
	r, err := svc.Impact(ctx, f)
	if err != nil {
		return rendered{}, err
	}
	out := rendered{Raw: r}
	switch r.Mode {
	case types.ImpactModePlayer:
		p := r.Player
		out.Title = fmt.Sprintf("Impact: %s, %s", p.Player, p.Season)
		out.Sections = []section{{Headers: []string{"Player", "Impact"}, Rows: [][]string{{p.Player, ftoa(p.Impact)}}}}
	case types.ImpactModeTeam:
		t := r.Team
		out.Title = fmt.Sprintf("Impact: %s, %s", t.Team, t.Season)
		rows := make([][]string, 0, len(t.Players))
		for i, p := range t.Players {
			rows = append(rows, []string{itoa(i + 1), p.Player, p.Role, ftoa(p.Impact), itoa(p.Runs), itoa(p.Wickets)})
		}
		out.Sections = []section{{Headers: []string{"#", "Player", "Role", "Impact", "Runs", "Wickets"}, Rows: rows}}
	default:
		l := r.Leaderboard
		out.Title = fmt.Sprintf("Impact leaderboard, %s", l.Season)
		rows := make([][]string, 0, len(l.Players))
		for i, p := range l.Players {
			rows = append(rows, []string{itoa(i + 1), p.Player, ftoa(p.Impact), itoa(p.Runs), ftoa(p.StrikeRate)})
		}
		out.Sections = []section{{Headers: []string{"#", "Player", "Impact", "Runs", "SR"}, Rows: rows}}
	}
	return out, nil
}

func rivalReport(ctx context.Context, svc *service.Service, f analytics.Filter) (rendered, error) {
	r, err := svc.Rival(ctx, f)
	if err != nil {
		return rendered{}, err
	}
	kinds := make([]string, 0, len(r.DismissalsBreakdown))
	for k := range r.DismissalsBreakdown {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	outs := make([][]string, 0, len(kinds))
	for _, k := range kinds {
		outs = append(outs, []string{k, itoa(r.DismissalsBreakdown[k])})
	}
	return rendered{
		Title: fmt.Sprintf("%s v %s", r.Batsman, r.Bowler),
		Sections: []section{
			{
				Headers: []string{"Balls", "Runs", "Outs", "SR", "4s", "6s"},
				Rows:    [][]string{{itoa(r.Balls), itoa(r.Runs), itoa(r.Dismissals), ftoa(r.SR), itoa(r.Fours), itoa(r.Sixes)}},
			},
			{Title: "Dismissals", Headers: []string{"Kind", "Count"}, Rows: outs},
		},
		Raw: r,
	}, nil
}

func seasonReport(ctx context.Context, svc *service.Service, f analytics.Filter) (rendered, error) {
	s, err := svc.SeasonSummary(ctx, f)
	if err != nil {
		return rendered{}, err
	}
	table := make([][]string, 0, len(s.TeamWinPercentages))
	for _, t := range s.TeamWinPercentages {
		table = append(table, []string{t.Team, itoa(t.Matches), itoa(t.Wins), pct(t.WinPercentage)})
	}
	runs := make([][]string, 0, len(s.TopRunScorers))
	for _, p := range s.TopRunScorers {
		runs = append(runs, []string{p.Player, itoa(p.Runs)})
	}
	wkts := make([][]string, 0, len(s.TopWicketTakers))
	for _, p := range s.TopWicketTakers {
		wkts = append(wkts, []string{p.Player, itoa(p.Wickets)})
	}
	return rendered{
		Title: fmt.Sprintf("IPL %d, champion %s", s.Season, s.Champion),
		Sections: []section{
			{
				Headers: []string{"Matches", "Runs", "Wickets", "Highest total", "Best chase"},
				Rows:    [][]string{{itoa(s.TotalMatches), itoa(s.TotalRuns), itoa(s.TotalWickets), itoa(s.HighestTotal), itoa(s.BestChase)}},
			},
			{Title: "Teams", Headers: []string{"Team", "Matches", "Wins", "Win %"}, Rows: table},
			{Title: "Orange cap race", Headers: []string{"Player", "Runs"}, Rows: runs},
			{Title: "Purple cap race", Headers: []string{"Player", "Wickets"}, Rows: wkts},
		},
		Raw: s,
	}, nil
}

func milestonesReport(ctx context.Context, svc *service.Service, f analytics.Filter) (rendered, error) {
	m, err := svc.Milestones(ctx, f)
	if err != nil {
		return rendered{}, err
	}
	scores := func(in []types.InningsScore) [][]string {
		rows := make([][]string, 0, len(in))
		for _, s := range in {
			rows = append(rows, []string{s.Player, itoa(s.Runs), itoa(s.Balls), s.Match, itoa(s.Season)})
		}
		return rows
	}
	figures := make([][]string, 0, len(m.BestBowlingFigures))
	for _, b := range m.BestBowlingFigures {
		figures = append(figures, []string{b.Player, b.Figures, ftoa(b.Overs), ftoa(b.Economy), b.Match, itoa(b.Season)})
	}
	totals := make([][]string, 0, len(m.HighestTeamTotals))
	for _, t := range m.HighestTeamTotals {
		totals = append(totals, []string{t.Team, fmt.Sprintf("%d/%d", t.Runs, t.Wickets), t.Match, itoa(t.Season)})
	}
	scoreHeaders := []string{"Player", "Runs", "Balls", "Match", "Season"}
	return rendered{
		Title: "Milestones",
		Sections: []section{
			{Title: "Highest scores", Headers: scoreHeaders, Rows: scores(m.HighestScores)},
			{Title: "Fastest fifties", Headers: scoreHeaders, Rows: scores(m.FastestFifties)},
			{Title: "Fastest hundreds", Headers: scoreHeaders, Rows: scores(m.FastestHundreds)},
			{Title: "Best bowling", Headers: []string{"Player", "Figures", "Overs", "Econ", "Match", "Season"}, Rows: figures},
			{Title: "Highest team totals", Headers: []string{"Team", "Score", "Match", "Season"}, Rows: totals},
		},
		Raw: m,
	}, nil
}

func umpiresReport(ctx context.Context, svc *service.Service, f analytics.Filter) (rendered, error) {
	us, err := svc.Umpires(ctx, f)
	if err != nil {
		return rendered{}, err
	}
	rows := make([][]string, 0, len(us))
	for _, u := range us {
		rows = append(rows, []string{u.Name, itoa(u.Matches)})
	}
	return rendered{
		Title:    "Umpires",
		Sections: []section{{Headers: []string{"Umpire", "Matches"}, Rows: rows}},
		Raw:      us,
	}, nil
}
