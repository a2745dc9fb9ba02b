package consts

const (
	BasePoints        = 10
	FiveStarBonus     = 5
	MilestoneBadge    = "milestone"
	LeaderboardLimit  = 100
	PercentileMaximum = 100
)

// UrgencyBonus is the extra points awarded on top of BasePoints for a
// completed request of the given urgency
var UrgencyBonus = map[string]int{
	"critical": 15,
	"high":     10,
	"medium":   5,
	"low":      0,
}

// Milestone is a badge granted when a volunteer reaches Count lifetime completions
type Milestone struct {
	Count int
	Badge string
}

var Milestones = []Milestone{
	{Count: 1, Badge: "First Help"},
	{Count: 10, Badge: "Helper"},
	{Count: 50, Badge: "Super Helper"},
	{Count: 100, Badge: "Relief Champion"},
}
