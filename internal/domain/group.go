package domain

import "time"

// Group is an expense-sharing group. Debts are recorded against a group and
// settled between its members.
type Group struct {
	ID          int32     `json:"group_id"`
	Name        string    `json:"group_name"`
	Description string    `json:"group_description"`
	CreatorID   int32     `json:"creator_id"`
	NumMembers  int32     `json:"num_members"`
	IsCreator   bool      `json:"is_creator"` // Derived per requesting user
	MemberIDs   []int32   `json:"member_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasMember reports whether the given user belongs to the group.
func (g *Group) HasMember(userID int32) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
