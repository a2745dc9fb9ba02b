package score

import (
	"math"
	"sort"

	"github.com/reliefhub/relief-api/consts"
	"github.com/reliefhub/relief-api/schema"
)

// Standing is the position of one user among all active users
type Standing struct {
	Rank       int `json:"rank"`
	TotalUsers int `json:"total_users"`
	Percentile int `json:"percentile"`
}

func ahead(a, b schema.UserStats) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.TotalHelped != b.TotalHelped {
		return a.TotalHelped > b.TotalHelped
	}
	return a.TotalDonated > b.TotalDonated
}

func tied(a, b schema.UserStats) bool {
	return a.Points == b.Points && a.TotalHelped == b.TotalHelped && a.TotalDonated == b.TotalDonated
}

// Rank orders a copy of users by points, then helps, then donations, and
// assigns ranks starting at 1. Users equal on all three keys share a rank
// and the next rank skips accordingly.
func Rank(users []schema.User) []schema.User {
	ranked := make([]schema.User, len(users))
	copy(ranked, users)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ahead(ranked[i].Stats, ranked[j].Stats)
	})

	for i := range ranked {
		if i > 0 && tied(ranked[i].Stats, ranked[i-1].Stats) {
			ranked[i].LeaderboardRank = ranked[i-1].LeaderboardRank
			continue
		}
		ranked[i].LeaderboardRank = i + 1
	}
	return ranked
}

// Percentile converts a rank into the share of users ranked below it
func Percentile(rank, total int) int {
	if total <= 0 || rank <= 0 {
		return 0
	}
	p := int(math.Round((1 - float64(rank)/float64(total)) * consts.PercentileMaximum))
	if p < 0 {
		return 0
	}
	return p
}
