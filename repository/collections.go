package repository

// Collection names in the durable store.
const (
	DailyStatsCollection    = "daily_stats"
	ActivitiesCollection    = "activities"
	UsersCollection         = "users"
	CirclesCollection       = "circles"
	CircleMembersCollection = "circle_members"
)
