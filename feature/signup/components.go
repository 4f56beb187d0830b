package signup

import "raidtrack/feature/raid"

// ButtonStyle mirrors the Discord button colours.
type ButtonStyle int

const (
	StylePrimary ButtonStyle = iota + 1
	StyleSecondary
	StyleSuccess
	StyleDanger
)

// Button is one signup button.
type Button struct {
	Label string
	Style ButtonStyle
	Token Token
}

var roleStyles = map[raid.Role]ButtonStyle{
	raid.RoleTank:   StylePrimary,
	raid.RoleHealer: StyleSuccess,
}

// RoleButtons returns the role choice row. ABSENT is offered separately as
// "Leave".
func RoleButtons(raidID string) []Button {
	roles := []raid.Role{raid.RoleTank, raid.RoleHealer, raid.RoleMelee, raid.RoleRanged, raid.RoleMaybe}
	buttons := make([]Button, 0, len(roles))
	for _, role := range roles {
		style, ok := roleStyles[role]
		if !ok {
			style = StyleSecondary
		}
		buttons = append(buttons, Button{Label: role.Label(), Style: style, Token: RoleToken(raidID, role)})
	}
	return buttons
}

// ManageButtons returns the change role, change class/spec and leave row.
func ManageButtons(raidID string) []Button {
	return []Button{
		{Label: "Change role", Style: StyleSecondary, Token: ChangeRoleToken(raidID)},
		{Label: "Change class/spec", Style: StyleSecondary, Token: ProfileToken(raidID)},
		{Label: "Leave", Style: StyleDanger, Token: RoleToken(raidID, raid.RoleAbsent)},
	}
}

// AnnouncementRows returns the button rows attached to an announcement.
func AnnouncementRows(raidID string) [][]Button {
	return [][]Button{RoleButtons(raidID), ManageButtons(raidID)}
}
