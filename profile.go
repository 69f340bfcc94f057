package geflip

import "github.com/osrstools/geflip/date"

// Profile holds the user's identity and progression counters. It is
// read-mostly: the counters only move when a flip is logged or the user
// shows up on a new day.
type Profile struct {
	Username    string    `json:"username"`
	XP          int64     `json:"xp"`
	Level       int       `json:"level"`
	LoginStreak int       `json:"loginStreak"`
	LastLogin   date.Date `json:"lastLogin,omitempty"`
	Tokens      int64     `json:"tokens"`

	Developer  bool `json:"developer,omitempty"`
	BetaTester bool `json:"betaTester,omitempty"`
	Premium    bool `json:"premium,omitempty"`
	Banned     bool `json:"banned,omitempty"`
}

// xpPerLevel is the xp required to advance one level; the requirement grows
// linearly so the curve is quadratic in total xp.
const xpPerLevel = 500

// LevelForXP maps total xp to a level, starting at 1.
// Level n requires the sum of the first n-1 step costs.
func LevelForXP(xp int64) int {
	level := 1
	need := int64(xpPerLevel)
	for xp >= need {
		xp -= need
		level++
		need += xpPerLevel
	}
	return level
}

// AwardFlipXP credits xp for a completed flip: a flat award per flip plus a
// bonus scaled by the realised profit, then recomputes the level.
func (p *Profile) AwardFlipXP(profit int64) {
	xp := int64(25)
	switch {
	case profit >= 10_000_000:
		xp += 500
	case profit >= 1_000_000:
		xp += 150
	case profit >= 100_000:
		xp += 50
	case profit > 0:
		xp += 10
	}
	p.XP += xp
	p.Level = LevelForXP(p.XP)
}

// TouchLogin updates the login streak for a visit on the given day:
// consecutive days extend the streak, a gap resets it, and repeat visits on
// the same day are no-ops.
func (p *Profile) TouchLogin(today date.Date) {
	switch {
	case p.LastLogin == today:
		return
	case p.LastLogin.Add(1) == today:
		p.LoginStreak++
	default:
		p.LoginStreak = 1
	}
	p.LastLogin = today
}
