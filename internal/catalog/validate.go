package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jwebster45206/mafios/pkg/state"
)

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

type validator struct {
	errors []string
}

func (v *validator) addError(format string, args ...any) {
	v.errors = append(v.errors, "  - "+fmt.Sprintf(format, args...))
}

func (v *validator) validateID(kind, id string, seen map[string]bool) {
	switch {
	case id == "":
		v.addError("%s has an empty id", kind)
		return
	case !isValidID(id):
		v.addError("%s id '%s' should be lowercase snake_case", kind, id)
	}
	if seen[id] {
		v.addError("duplicate %s id '%s'", kind, id)
	}
	seen[id] = true
}

func (v *validator) percent(what string, n int) {
	if n < 0 || n > 100 {
		v.addError("%s is %d, want 0-100", what, n)
	}
}

// Validate checks ids, enum values, ranges and cross references. Every problem
// is reported, not just the first.
func (c *Catalog) Validate() error {
	v := &validator{}

	if c.Chapter == "" {
		v.addError("chapter name is empty")
	}
	if c.StartingCash < 0 {
		v.addError("startingCash is negative")
	}
	v.percent("startingRespekt", c.StartingRespekt)

	seen := map[string]bool{}
	for _, m := range c.Members {
		v.validateID("member", m.ID, seen)
		if !m.Role.Valid() {
			v.addError("member '%s' has unknown role '%s'", m.ID, m.Role)
		}
		if m.Status != "" && !m.Status.Valid() {
			v.addError("member '%s' has unknown status '%s'", m.ID, m.Status)
		}
		if m.Status == state.MemberOnMission {
			v.addError("member '%s' cannot start on a mission", m.ID)
		}
		v.percent(fmt.Sprintf("member '%s' loyalty", m.ID), m.Loyalty)
	}

	seen = map[string]bool{}
	for _, t := range c.Territories {
		v.validateID("territory", t.ID, seen)
		if !t.Status.Valid() {
			v.addError("territory '%s' has unknown status '%s'", t.ID, t.Status)
		}
		v.percent(fmt.Sprintf("territory '%s' control", t.ID), t.Control)
		if t.DefenseLevel < 0 || t.DefenseLevel > 10 {
			v.addError("territory '%s' defenseLevel is %d, want 0-10", t.ID, t.DefenseLevel)
		}
	}

	c.validateBusinesses(v)
	c.validateOperations(v)

	seen = map[string]bool{}
	for _, g := range c.Gangs {
		v.validateID("gang", g.ID, seen)
		if g.Hostility < state.HostilityMin || g.Hostility > state.HostilityMax {
			v.addError("gang '%s' hostility %.0f is outside -100..100", g.ID, g.Hostility)
		}
		if g.Strength < state.GangStrengthMin {
			v.addError("gang '%s' strength must be at least %d", g.ID, state.GangStrengthMin)
		}
		if g.RelationStatus != "" && !g.RelationStatus.Valid() {
			v.addError("gang '%s' has unknown relationStatus '%s'", g.ID, g.RelationStatus)
		}
	}

	c.validateEvents(v)

	seen = map[string]bool{}
	for _, cr := range c.Crimes {
		v.validateID("crime", cr.ID, seen)
		v.percent(fmt.Sprintf("crime '%s' successChance", cr.ID), cr.SuccessChance)
		if cr.MinReward > cr.MaxReward {
			v.addError("crime '%s' minReward exceeds maxReward", cr.ID)
		}
		if cr.RequiredLevel < 1 {
			v.addError("crime '%s' requiredLevel must be at least 1", cr.ID)
		}
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors:\n%s", strings.Join(v.errors, "\n"))
	}
	return nil
}

func (c *Catalog) validateBusinesses(v *validator) {
	seen := map[string]bool{}
	for _, b := range c.Businesses {
		v.validateID("business", b.ID, seen)
	}
	for _, b := range c.Businesses {
		if !b.Status.Valid() {
			v.addError("business '%s' has unknown status '%s'", b.ID, b.Status)
		}
		if b.Status == state.BusinessOwned {
			v.addError("business '%s' cannot start owned", b.ID)
		}
		if b.Level < 1 || b.Level > b.MaxLevel {
			v.addError("business '%s' level %d is outside 1..%d", b.ID, b.Level, b.MaxLevel)
		}
		v.percent(fmt.Sprintf("business '%s' efficiency", b.ID), b.Efficiency)
		if b.ManagerID != nil {
			v.addError("business '%s' cannot start with a manager", b.ID)
		}
		if (b.LaunderingCapacity == nil) != (b.LaunderingFee == nil) {
			v.addError("business '%s' needs both launderingCapacity and launderingFee, or neither", b.ID)
		}
		for _, pre := range b.PrerequisiteBusinesses {
			switch {
			case pre == b.ID:
				v.addError("business '%s' lists itself as a prerequisite", b.ID)
			case !seen[pre]:
				v.addError("business '%s' requires unknown business '%s'", b.ID, pre)
			}
		}
		if len(b.PrerequisiteBusinesses) > 0 && b.Status == state.BusinessAvailable {
			v.addError("business '%s' has prerequisites and should start locked", b.ID)
		}
	}
}

func (c *Catalog) validateOperations(v *validator) {
	seen := map[string]bool{}
	for _, o := range c.Operations {
		v.validateID("operation", o.ID, seen)
		if !o.Type.Valid() {
			v.addError("operation '%s' has unknown type '%s'", o.ID, o.Type)
		}
		if !o.Status.Valid() {
			v.addError("operation '%s' has unknown status '%s'", o.ID, o.Status)
		}
		if o.MaxMembers < 1 {
			v.addError("operation '%s' maxMembers must be at least 1", o.ID)
		}
		if len(o.AssignedMemberIDs) > 0 {
			v.addError("operation '%s' cannot start with assigned members", o.ID)
		}
		if o.IncomePerTick == nil && o.HeatReductionPerTick == nil {
			v.addError("operation '%s' produces neither income nor heat reduction", o.ID)
		}
	}
}

func (c *Catalog) validateEvents(v *validator) {
	seen := map[string]bool{}
	for _, e := range c.Events {
		v.validateID("event", e.ID, seen)
		if !e.Type.Valid() {
			v.addError("event '%s' has unknown type '%s'", e.ID, e.Type)
		}
		if e.Title == "" {
			v.addError("event '%s' has no title", e.ID)
		}
		tc := e.TriggerConditions
		if tc.Probability <= 0 || tc.Probability > 100 {
			v.addError("event '%s' probability %.1f is outside (0, 100] and can never fire as written", e.ID, tc.Probability)
		}
		if e.Repeatable && tc.CooldownMinutes == nil {
			v.addError("repeatable event '%s' has no cooldown", e.ID)
		}
		if len(e.Choices) == 0 {
			v.addError("event '%s' has no choices", e.ID)
		}
		choiceIDs := map[string]bool{}
		for _, ch := range e.Choices {
			v.validateID(fmt.Sprintf("event '%s' choice", e.ID), ch.ID, choiceIDs)
			if ch.Text == "" {
				v.addError("event '%s' choice '%s' has no text", e.ID, ch.ID)
			}
			if ch.SuccessChance != nil {
				v.percent(fmt.Sprintf("event '%s' choice '%s' successChance", e.ID, ch.ID), *ch.SuccessChance)
			}
		}
	}
}
