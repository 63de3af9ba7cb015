package models

// LevelInfo is the decoded level position for an XP total
type LevelInfo struct {
	Level    int
	Into     int64 // XP accumulated inside the current level
	ToNext   int64 // XP cost of the next level
	Progress float64
}

// ActivityStats summarizes a user's trailing-30-days activity
type ActivityStats struct {
	XP       int64
	Sessions int64
}

// Profile is the aggregated character sheet for one user
type Profile struct {
	User         *User
	TotalXP      int64
	Level        LevelInfo
	XPByHouse    []*HouseXP
	Activity30d  ActivityStats
	TopSkills30d []*SkillMinutes
	TopSkillsAll []*SkillMinutes
	Collections  []*CollectionProgress
}
