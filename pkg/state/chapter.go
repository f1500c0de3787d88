package state

// Skills is a member's combat/stealth/charisma triad, each 0-100.
type Skills struct {
	Combat   int `json:"combat" yaml:"combat"`
	Stealth  int `json:"stealth" yaml:"stealth"`
	Charisma int `json:"charisma" yaml:"charisma"`
}

// Get returns the value of a single skill.
func (s Skills) Get(skill Skill) int {
	switch skill {
	case SkillCombat:
		return s.Combat
	case SkillStealth:
		return s.Stealth
	case SkillCharisma:
		return s.Charisma
	default:
		return 0
	}
}

// Set stores a skill value clamped to [0,100].
func (s *Skills) Set(skill Skill, v int) {
	v = ClampPercent(v)
	switch skill {
	case SkillCombat:
		s.Combat = v
	case SkillStealth:
		s.Stealth = v
	case SkillCharisma:
		s.Charisma = v
	}
}

// Member is one person on the chapter roster.
type Member struct {
	ID      string       `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	Role    MemberRole   `json:"role" yaml:"role"`
	Status  MemberStatus `json:"status" yaml:"status"`
	Loyalty int          `json:"loyalty" yaml:"loyalty"`
	Power   int          `json:"power" yaml:"power"`
	Skills  Skills       `json:"skills" yaml:"skills"`
}

// ChapterStats is derived from the member list; see RecomputeChapterStats.
type ChapterStats struct {
	TotalMembers   int `json:"totalMembers" yaml:"totalMembers"`
	ActiveMembers  int `json:"activeMembers" yaml:"activeMembers"`
	OnMission      int `json:"onMission" yaml:"onMission"`
	TotalPower     int `json:"totalPower" yaml:"totalPower"`
	AverageLoyalty int `json:"averageLoyalty" yaml:"averageLoyalty"`
}

// Chapter is the player's organisation.
type Chapter struct {
	Name       string       `json:"name" yaml:"name"`
	Members    []Member     `json:"members" yaml:"members"`
	Stats      ChapterStats `json:"stats" yaml:"stats"`
	Reputation int          `json:"reputation" yaml:"reputation"`
}

// Member returns the index of the member with the given id, or -1.
func (c *Chapter) Member(id string) int {
	for i := range c.Members {
		if c.Members[i].ID == id {
			return i
		}
	}
	return -1
}

// LivingMembers counts members who are not deceased.
func (c *Chapter) LivingMembers() int {
	n := 0
	for _, m := range c.Members {
		switch m.Status {
		case MemberActive, MemberInactive, MemberOnMission:
			n++
		case MemberDeceased:
		}
	}
	return n
}

// RecomputeChapterStats rebuilds chapter stats from scratch.
func RecomputeChapterStats(members []Member) ChapterStats {
	var st ChapterStats
	loyalty := 0
	living := 0
	for _, m := range members {
		switch m.Status {
		case MemberActive:
			st.ActiveMembers++
		case MemberOnMission:
			st.OnMission++
		case MemberInactive:
		case MemberDeceased:
			continue
		}
		living++
		st.TotalPower += m.Power
		loyalty += m.Loyalty
	}
	st.TotalMembers = living
	if living > 0 {
		st.AverageLoyalty = loyalty / living
	}
	return st
}
