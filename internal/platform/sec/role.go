// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole is the authorization level carried by a token.
type UserRole string

const (
	RoleGameMaster UserRole = "gm"     // creates, changes and deletes campaign data
	RoleViewer     UserRole = "viewer" // watches the shared screen
)

var roleRank = map[UserRole]int{
	RoleViewer:     1,
	RoleGameMaster: 2,
}

// AtLeast reports whether r grants everything target does. Unknown roles
// grant nothing.
func (r UserRole) AtLeast(target UserRole) bool {
	return roleRank[r] > 0 && roleRank[r] >= roleRank[target]
}
