package state

// MemberStatus is the availability of a chapter member.
type MemberStatus string

const (
	MemberActive    MemberStatus = "Active"
	MemberInactive  MemberStatus = "Inactive"
	MemberOnMission MemberStatus = "OnMission"
	MemberDeceased  MemberStatus = "Deceased"
)

func (s MemberStatus) Valid() bool {
	switch s {
	case MemberActive, MemberInactive, MemberOnMission, MemberDeceased:
		return true
	default:
		return false
	}
}

// MemberRole is a member's rank within the chapter.
type MemberRole string

const (
	RolePresident      MemberRole = "President"
	RoleVicePresident  MemberRole = "VicePresident"
	RoleSergeantAtArms MemberRole = "SergeantAtArms"
	RoleRoadCaptain    MemberRole = "RoadCaptain"
	RoleEnforcer       MemberRole = "Enforcer"
	RoleMember         MemberRole = "Member"
	RoleProspect       MemberRole = "Prospect"
)

func (r MemberRole) Valid() bool {
	switch r {
	case RolePresident, RoleVicePresident, RoleSergeantAtArms, RoleRoadCaptain,
		RoleEnforcer, RoleMember, RoleProspect:
		return true
	default:
		return false
	}
}

// TerritoryStatus is who holds a territory.
type TerritoryStatus string

const (
	TerritoryControlled TerritoryStatus = "Controlled"
	TerritoryContested  TerritoryStatus = "Contested"
	TerritoryEnemy      TerritoryStatus = "Enemy"
	TerritoryNeutral    TerritoryStatus = "Neutral"
)

func (s TerritoryStatus) Valid() bool {
	switch s {
	case TerritoryControlled, TerritoryContested, TerritoryEnemy, TerritoryNeutral:
		return true
	default:
		return false
	}
}

// BusinessStatus tracks whether a business can be bought.
type BusinessStatus string

const (
	BusinessLocked    BusinessStatus = "locked"
	BusinessAvailable BusinessStatus = "available"
	BusinessOwned     BusinessStatus = "owned"
)

func (s BusinessStatus) Valid() bool {
	switch s {
	case BusinessLocked, BusinessAvailable, BusinessOwned:
		return true
	default:
		return false
	}
}

type OperationType string

const (
	OperationIncome  OperationType = "Income"
	OperationDefense OperationType = "Defense"
	OperationOffense OperationType = "Offense"
)

func (t OperationType) Valid() bool {
	switch t {
	case OperationIncome, OperationDefense, OperationOffense:
		return true
	default:
		return false
	}
}

type OperationStatus string

const (
	OperationActive   OperationStatus = "Active"
	OperationCooldown OperationStatus = "Cooldown"
	OperationReady    OperationStatus = "Ready"
)

func (s OperationStatus) Valid() bool {
	switch s {
	case OperationActive, OperationCooldown, OperationReady:
		return true
	default:
		return false
	}
}

// RelationStatus is a rival gang's stance toward the chapter.
type RelationStatus string

const (
	RelationHostile RelationStatus = "Hostile"
	RelationNeutral RelationStatus = "Neutral"
	RelationTruce   RelationStatus = "Truce"
	RelationAllied  RelationStatus = "Allied"
)

func (s RelationStatus) Valid() bool {
	switch s {
	case RelationHostile, RelationNeutral, RelationTruce, RelationAllied:
		return true
	default:
		return false
	}
}

// RelationFor maps hostility to a relation status. The bands are kept as the
// game has always balanced them: Neutral sits below -20 and Truce reaches up to 40.
func RelationFor(hostility float64) RelationStatus {
	switch {
	case hostility <= -60:
		return RelationHostile
	case hostility <= -20:
		return RelationNeutral
	case hostility <= 40:
		return RelationTruce
	default:
		return RelationAllied
	}
}

type GangEventType string

const (
	GangEventAttack     GangEventType = "attack"
	GangEventRaid       GangEventType = "raid"
	GangEventChallenge  GangEventType = "challenge"
	GangEventOffer      GangEventType = "offer"
	GangEventPeaceOffer GangEventType = "peace_offer"
	GangEventBetrayal   GangEventType = "betrayal"
)

func (t GangEventType) Valid() bool {
	switch t {
	case GangEventAttack, GangEventRaid, GangEventChallenge, GangEventOffer,
		GangEventPeaceOffer, GangEventBetrayal:
		return true
	default:
		return false
	}
}

// Hostile reports whether the event is a threat rather than a proposal.
func (t GangEventType) Hostile() bool {
	switch t {
	case GangEventAttack, GangEventRaid, GangEventChallenge, GangEventBetrayal:
		return true
	case GangEventOffer, GangEventPeaceOffer:
		return false
	default:
		return false
	}
}

type GangEventOutcome string

const (
	OutcomeSuccess    GangEventOutcome = "success"
	OutcomeFailure    GangEventOutcome = "failure"
	OutcomeNegotiated GangEventOutcome = "negotiated"
)

func (o GangEventOutcome) Valid() bool {
	switch o {
	case OutcomeSuccess, OutcomeFailure, OutcomeNegotiated:
		return true
	default:
		return false
	}
}

// GangResponse is the player's answer to a pending gang event.
//
// Accept takes the event's consequences as built: pay the raid demand, absorb
// the attack or betrayal, back down from a challenge, take the offered cash
// or the peace. Decline on an offer or peace offer turns it down at a
// hostility cost. Decline on a hostile event (attack, raid, challenge,
// betrayal) refuses to give way, which means a fight. Fight always fights.
type GangResponse string

const (
	ResponseAccept  GangResponse = "accept"
	ResponseDecline GangResponse = "decline"
	ResponseFight   GangResponse = "fight"
)

func (r GangResponse) Valid() bool {
	switch r {
	case ResponseAccept, ResponseDecline, ResponseFight:
		return true
	default:
		return false
	}
}

// NegotiationOffer is what the chapter puts on the table in negotiateWithGang.
type NegotiationOffer string

const (
	OfferTruce    NegotiationOffer = "truce"
	OfferAlliance NegotiationOffer = "alliance"
	OfferPayment  NegotiationOffer = "payment"
)

func (o NegotiationOffer) Valid() bool {
	switch o {
	case OfferTruce, OfferAlliance, OfferPayment:
		return true
	default:
		return false
	}
}

// EventType classifies random narrative events.
type EventType string

const (
	EventPoliceRaid          EventType = "police_raid"
	EventRivalAttack         EventType = "rival_attack"
	EventBusinessOpportunity EventType = "business_opportunity"
	EventMemberBetrayal      EventType = "member_betrayal"
	EventInformant           EventType = "informant"
	EventMarketCrash         EventType = "market_crash"
	EventPoliticalFavor      EventType = "political_favor"
	EventRecruitment         EventType = "recruitment"
	EventTerritoryDispute    EventType = "territory_dispute"
	EventWindfall            EventType = "windfall"
)

func (t EventType) Valid() bool {
	switch t {
	case EventPoliceRaid, EventRivalAttack, EventBusinessOpportunity, EventMemberBetrayal,
		EventInformant, EventMarketCrash, EventPoliticalFavor, EventRecruitment,
		EventTerritoryDispute, EventWindfall:
		return true
	default:
		return false
	}
}

// Skill names one of a member's three skills.
type Skill string

const (
	SkillCombat   Skill = "combat"
	SkillStealth  Skill = "stealth"
	SkillCharisma Skill = "charisma"
)

func (s Skill) Valid() bool {
	switch s {
	case SkillCombat, SkillStealth, SkillCharisma:
		return true
	default:
		return false
	}
}
