package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/iplstats/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const matchesCSV = `id,season,city,date,team1,team2,toss_winner,toss_decision,result,dl_applied,winner,win_by_runs,win_by_wickets,player_of_match,venue,umpire1,umpire2,umpire3
1,2017,Hyderabad,2017-04-05,Sunrisers Hyderabad,Royal Challengers Bangalore,Royal Challengers Bangalore,field,normal,0,Sunrisers Hyderabad,35,0,Yuvraj Singh,"Rajiv Gandhi International Stadium, Uppal",AY Dandekar,NJ Llong,
2,IPL-2017,Pune,06-04-2017,Mumbai Indians,Rising Pune Supergiant,Rising Pune Supergiant,field,normal,0,Rising Pune Supergiant,0,7,SPD Smith,Maharashtra Cricket Association Stadium,A Nand Kishore,S Ravi,
3,,Kolkata,12/05/19,Kolkata Knight Riders,Mumbai Indians,,,no result,0,,0,0,,Eden Gardens,,,
4,2017,Delhi,2017-04-08,Delhi Daredevils,Kings XI Punjab,,,normal,0,Chennai Super Kings,0,0,,Feroz Shah Kotla,,,
1,2017,Hyderabad,2017-04-05,Sunrisers Hyderabad,Royal Challengers Bangalore,,,normal,0,,0,0,,Uppal,,,
`

const deliveriesCSV = `match_id,inning,batting_team,bowling_team,over,ball,batsman,non_striker,bowler,is_super_over,wide_runs,bye_runs,legbye_runs,noball_runs,penalty_runs,batsman_runs,extra_runs,total_runs,player_dismissed,dismissal_kind,fielder
1,1,Sunrisers Hyderabad,Royal Challengers Bangalore,1,1,DA Warner,S Dhawan,TS Mills,0,0,0,0,0,0,0,0,0,,,
1,1,Sunrisers Hyderabad,Royal Challengers Bangalore,1,2,DA Warner,S Dhawan,TS Mills,0,2,0,0,0,0,0,2,2,,,
1,1,Sunrisers Hyderabad,Royal Challengers Bangalore,1,3,DA Warner,S Dhawan,TS Mills,0,0,0,0,0,0,0,0,0,DA Warner,caught,Mandeep Singh
2,2,Rising Pune Supergiant,Mumbai Indians,20,6,MS Dhoni,SPD Smith,JJ Bumrah,0,0,0,0,0,0,6,0,6,,,
1,1,Sunrisers Hyderabad,Royal Challengers Bangalore,1,4,DA Warner,S Dhawan,TS Mills,0,0,0,0,0,0,4,0,5,,,
1,1,Sunrisers Hyderabad,Royal Challengers Bangalore,x,4,DA Warner,S Dhawan,TS Mills,0,0,0,0,0,0,4,0,4,,,
99,1,Sunrisers Hyderabad,Royal Challengers Bangalore,1,5,DA Warner,S Dhawan,TS Mills,0,0,0,0,0,0,1,0,1,,,
`

func TestReadMatches(t *testing.T) {
	matches, rep, err := ReadMatches(context.Background(), strings.NewReader(matchesCSV))
	require.NoError(t, err)
	assert.Equal(t, Report{Read: 5, Imported: 3, Skipped: 2}, rep, "foreign winner and duplicate id are skipped")
	require.Len(t, matches, 3)

	assert.Equal(t, time.Date(2017, 4, 5, 0, 0, 0, 0, time.UTC), matches[0].Date)
	assert.Equal(t, "Rajiv Gandhi International Stadium, Uppal", matches[0].Venue)

	assert.Equal(t, 2017, matches[1].Season, "season digits are pulled out of IPL-2017")
	assert.Equal(t, time.Date(2017, 4, 6, 0, 0, 0, 0, time.UTC), matches[1].Date, "day-first dates")
	assert.Equal(t, "Rising Pune Supergiants", matches[1].Team2, "aliases are canonicalized")
	assert.Equal(t, "Rising Pune Supergiants", matches[1].Winner)

	assert.Equal(t, 2019, matches[2].Season, "season falls back to the date year")
	assert.Empty(t, matches[2].Winner)
}

func TestReadDeliveries(t *testing.T) {
	deliveries, rep, err := ReadDeliveries(context.Background(), strings.NewReader(deliveriesCSV))
	require.NoError(t, err)
	assert.Equal(t, Report{Read: 7, Imported: 5, Skipped: 2}, rep, "runs mismatch and non-numeric over are skipped")

	assert.Equal(t, 2, deliveries[1].WideRuns)
	assert.Equal(t, "Mandeep Singh", deliveries[2].DismissalFielders)
	assert.Equal(t, "Rising Pune Supergiants", deliveries[3].BattingTeam)
}

func TestReadEmpty(t *testing.T) {
	_, _, err := ReadMatches(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestLoadCSVAndParquet(t *testing.T) {
	dir := t.TempDir()
	mp := filepath.Join(dir, "matches.csv")
	dp := filepath.Join(dir, "deliveries.csv")
	require.NoError(t, os.WriteFile(mp, []byte(matchesCSV), 0o600))
	require.NoError(t, os.WriteFile(dp, []byte(deliveriesCSV), 0o600))

	ds, err := LoadCSV(context.Background(), mp, dp)
	require.NoError(t, err)
	assert.Len(t, ds.Matches, 3)
	assert.Len(t, ds.Deliveries, 4)
	assert.Equal(t, 1, ds.OrphanDeliveries, "match 99 is not in matches.csv")

	snap := filepath.Join(dir, "snapshot")
	require.NoError(t, WriteParquet(snap, ds.Matches, ds.Deliveries))

	matches, deliveries, err := ReadParquet(snap)
	require.NoError(t, err)
	assert.Equal(t, ds.Matches, matches)
	assert.Equal(t, ds.Deliveries, deliveries)

	_, _, err = ReadParquet(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
