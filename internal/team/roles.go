package team

import "github.com/meur/cobbledex/internal/dex"

// Role is one of six mutually exclusive battle-role labels.
type Role string

const (
	RoleFastSweeper   Role = "Fast Sweeper"
	RoleSlowSweeper   Role = "Slow Sweeper"
	RoleWall          Role = "Wall/Tank"
	RoleBulkyAttacker Role = "Bulky Attacker"
	RoleSupport       Role = "Support/Utility"
	RoleBalanced      Role = "Balanced"
)

// Classify assigns a role from base stats alone. Rules are evaluated in
// fixed priority order; the first match wins.
func Classify(s dex.BaseStats) Role {
	offense := s.Attack + s.SpecialAttack
	bulk := s.Defense + s.SpecialDefense + s.HP
	switch {
	case s.Speed >= 100 && offense >= 200:
		return RoleFastSweeper
	case offense >= 220:
		return RoleSlowSweeper
	case bulk >= 300:
		return RoleWall
	case s.Speed >= 90 && bulk >= 250:
		return RoleBulkyAttacker
	case s.Total() < 450:
		return RoleSupport
	}
	return RoleBalanced
}

func isSweeper(r Role) bool {
	return r == RoleFastSweeper || r == RoleSlowSweeper
}

func isDefensive(r Role) bool {
	return r == RoleWall || r == RoleBulkyAttacker || r == RoleSupport
}
