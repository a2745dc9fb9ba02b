package score

import (
	"github.com/reliefhub/relief-api/consts"
	"github.com/reliefhub/relief-api/schema"
)

// PointsFor returns the points a volunteer earns for completing a request
// of the given urgency. Unknown urgencies earn the base points only.
func PointsFor(urgency schema.Urgency) int {
	return consts.BasePoints + consts.UrgencyBonus[string(urgency)]
}

// BadgesFor lists the milestone badges a volunteer with count lifetime
// completions is entitled to, lowest milestone first
func BadgesFor(count int) []string {
	badges := make([]string, 0, len(consts.Milestones))
	for _, m := range consts.Milestones {
		if count >= m.Count {
			badges = append(badges, m.Badge)
		}
	}
	return badges
}

// NewBadges returns the entitled badges the user does not hold yet
func NewBadges(u *schema.User) []string {
	missing := make([]string, 0)
	for _, name := range BadgesFor(u.Stats.CompletedRequests) {
		if !u.HasBadge(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
