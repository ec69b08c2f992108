package loadtest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const maxPerKind = 4

// discover reads the entity lists and expands them into report paths.
func discover(ctx context.Context, c *client, season int) ([]string, error) {
	var teams []struct {
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, "/api/teams", &teams); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	var venues []string
	if err := c.getJSON(ctx, "/api/analytics/venues", &venues); err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	var batsmen []struct {
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, "/api/players/top-batsmen?limit="+strconv.Itoa(maxPerKind), &batsmen); err != nil {
		return nil, fmt.Errorf("list batsmen: %w", err)
	}
	if season == 0 {
		var summary struct {
			MatchesPerSeason map[int]int `json:"matchesPerSeason"`
		}
		if err := c.getJSON(ctx, "/api/matches/stats/summary", &summary); err != nil {
			return nil, fmt.Errorf("matches summary: %w", err)
		}
		for s := range summary.MatchesPerSeason {
			if season == 0 || s < season {
				season = s
			}
		}
	}

	q := url.QueryEscape
	paths := []string{
		"/api/analytics/phase",
		"/api/analytics/impact",
		"/api/analytics/milestones",
		"/api/analytics/umpires",
		"/api/matches/stats/summary",
	}
	if season != 0 {
		s := strconv.Itoa(season)
		paths = append(paths,
			"/api/analytics/seasons/"+s,
			"/api/analytics/phase?season="+s,
			"/api/analytics/milestones?season="+s,
		)
	}
	for i, t := range teams {
		if i == maxPerKind {
			break
		}
		paths = append(paths,
			"/api/analytics/phase?team="+q(t.Name),
			"/api/analytics/impact?team="+q(t.Name),
			"/api/teams/"+url.PathEscape(t.Name)+"/seasons",
		)
		if i+1 < len(teams) {
			paths = append(paths, "/api/headtohead?team1="+q(t.Name)+"&team2="+q(teams[i+1].Name))
		}
	}
	for i, v := range venues {
		if i == maxPerKind {
			break
		}
		paths = append(paths, "/api/analytics/venues/"+url.PathEscape(v)+"/metrics")
	}
	for _, b := range batsmen {
		paths = append(paths,
			"/api/analytics/phase?player="+q(b.Name),
			"/api/analytics/players/"+url.PathEscape(b.Name),
		)
	}
	return paths, nil
}
