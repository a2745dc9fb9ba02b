package schema

import "time"

const (
	UserCollection = "user"
)

type UserType string

const (
	UserIndividual   UserType = "individual"
	UserOrganization UserType = "organization"
	UserCompany      UserType = "company"
	UserGovernment   UserType = "government"
)

// UserStats is the reputation projection of a user
type UserStats struct {
	TotalHelped       int     `json:"total_helped" bson:"total_helped"`
	CompletedRequests int     `json:"completed_requests" bson:"completed_requests"`
	AverageRating     float64 `json:"average_rating" bson:"average_rating"`
	TotalReviews      int     `json:"total_reviews" bson:"total_reviews"`
	Points            int     `json:"points" bson:"points"`
	TotalDonated      float64 `json:"total_donated" bson:"total_donated"`
}

type Badge struct {
	Name     string    `json:"name" bson:"name"`
	Type     string    `json:"type" bson:"type"`
	EarnedAt time.Time `json:"earned_at" bson:"earned_at"`
}

// User is the part of an account this service reads and the reputation
// fields it maintains. Accounts are written by the auth service.
type User struct {
	ID              string    `json:"id" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	UserType        UserType  `json:"user_type" bson:"user_type"`
	IsActive        bool      `json:"is_active" bson:"is_active"`
	Stats           UserStats `json:"stats" bson:"stats"`
	Badges          []Badge   `json:"badges" bson:"badges"`
	LeaderboardRank int       `json:"leaderboard_rank" bson:"leaderboard_rank"`
}

// HasBadge reports whether the badge was already granted
func (u *User) HasBadge(name string) bool {
	for _, b := range u.Badges {
		if b.Name == name {
			return true
		}
	}
	return false
}

type LeaderboardFilter string

const (
	LeaderboardAll           LeaderboardFilter = "all"
	LeaderboardDonors        LeaderboardFilter = "donors"
	LeaderboardVolunteers    LeaderboardFilter = "volunteers"
	LeaderboardOrganizations LeaderboardFilter = "organizations"
)
