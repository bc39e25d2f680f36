package domain

// MemberDetail is the public profile of an active team member.
type MemberDetail struct {
	Name  string `json:"name"`
	Grade string `json:"grade"`
	Major string `json:"major"`
	Email string `json:"email"`
}

// TeamRoster is one registered team with its active members.
type TeamRoster struct {
	TeamID   string         `json:"team_id"`
	TeamName string         `json:"team_name"`
	Members  []MemberDetail `json:"members"`
}
