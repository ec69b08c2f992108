package fixtures

import "fmt"

// RosterSize is the number of players in every generated squad.
const RosterSize = 11

// Team is a franchise with its home ground.
type Team struct {
	Name  string
	Short string
	Venue string
	City  string
}

// Roster returns the eleven player names of the team in batting order.
// The last five bowl and the sixth keeps wicket.
func (t Team) Roster() []string {
	out := make([]string, RosterSize)
	for i := range out {
		out[i] = fmt.Sprintf("%s Player %02d", t.Short, i+1)
	}
	return out
}

// DefaultTeams are the eight long-running franchises.
var DefaultTeams = []Team{
	{Name: "Chennai Super Kings", Short: "CSK", Venue: "MA Chidambaram Stadium, Chepauk", City: "Chennai"},
	{Name: "Mumbai Indians", Short: "MI", Venue: "Wankhede Stadium", City: "Mumbai"},
	{Name: "Kolkata Knight Riders", Short: "KKR", Venue: "Eden Gardens", City: "Kolkata"},
	{Name: "Royal Challengers Bangalore", Short: "RCB", Venue: "M Chinnaswamy Stadium", City: "Bangalore"},
	{Name: "Delhi Daredevils", Short: "DD", Venue: "Feroz Shah Kotla", City: "Delhi"},
	{Name: "Kings XI Punjab", Short: "KXIP", Venue: "Punjab Cricket Association Stadium, Mohali", City: "Chandigarh"},
	{Name: "Rajasthan Royals", Short: "RR", Venue: "Sawai Mansingh Stadium", City: "Jaipur"},
	{Name: "Sunrisers Hyderabad", Short: "SRH", Venue: "Rajiv Gandhi International Stadium, Uppal", City: "Hyderabad"},
}

var umpirePool = []string{
	"Aleem Dar", "S Ravi", "HDPK Dharmasena", "AK Chaudhary",
	"C Shamshuddin", "Nitin Menon", "BNJ Oxenford", "M Erasmus",
}
