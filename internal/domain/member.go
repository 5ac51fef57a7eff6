package domain

type Role string

const (
	RoleCasual    Role = "CASUAL"
	RoleMonthly   Role = "MONTHLY"
	RoleSustainer Role = "SUSTAINER"
)

// rolePriority orders membership tiers. Unknown or empty roles rank lowest,
// so a member with no role yet is always eligible for promotion.
var rolePriority = map[Role]int{
	RoleCasual:    0,
	RoleMonthly:   1,
	RoleSustainer: 2,
}

func (r Role) Priority() int {
	return rolePriority[r]
}

// PromoteRole returns the role the member should hold after an attempted
// promotion to target. Promotions only ever move up the priority ladder;
// the second return value reports whether the role actually changed.
func PromoteRole(current, target Role) (Role, bool) {
	if target.Priority() > current.Priority() {
		return target, true
	}
	return current, false
}

type Diet string

const (
	DietVegan      Diet = "VEGAN"
	DietVegetarian Diet = "VEGETARIAN"
	DietOmnivore   Diet = "OMNIVORE"
)

type Member struct {
	ID            int32  `json:"id"`
	FullName      string `json:"full_name"`
	IsChild       bool   `json:"is_child"`
	ResponsibleID *int32 `json:"responsible_id,omitempty"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	HeardAbout    string `json:"heard_about"`
	Role          Role   `json:"role,omitempty"` // empty until first purchase
	Diet          Diet   `json:"diet"`
	Observations  string `json:"observations"`
	CreatedOn     string `json:"created_on"`
	UpdatedOn     string `json:"updated_on"`
}
