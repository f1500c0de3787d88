package state

import (
	"time"

	"github.com/jwebster45206/mafios/pkg/conditionals"
)

// EventHistoryLimit caps EventHistory; older records are dropped first.
const EventHistoryLimit = 10

// Requirements gate a choice. Zero fields are not checked.
type Requirements struct {
	Cash      int64 `json:"kontanter,omitempty" yaml:"kontanter,omitempty"`
	Respekt   int   `json:"respekt,omitempty" yaml:"respekt,omitempty"`
	Influence int64 `json:"inflytande,omitempty" yaml:"inflytande,omitempty"`
	Members   int   `json:"members,omitempty" yaml:"members,omitempty"`
	Level     int   `json:"level,omitempty" yaml:"level,omitempty"`
}

// Met reports whether the player and chapter satisfy every requirement.
func (r Requirements) Met(gs *GameState) bool {
	if r.Cash > 0 && gs.Player.Cash < r.Cash {
		return false
	}
	if r.Respekt > 0 && gs.Player.Respekt < r.Respekt {
		return false
	}
	if r.Influence > 0 && gs.Player.Influence < r.Influence {
		return false
	}
	if r.Members > 0 && gs.Chapter.LivingMembers() < r.Members {
		return false
	}
	if r.Level > 0 && gs.Player.Level < r.Level {
		return false
	}
	return true
}

// Consequences is a bundle of resource deltas applied when a choice resolves.
type Consequences struct {
	Cash       int64  `json:"kontanter,omitempty" yaml:"kontanter,omitempty"`
	Respekt    int    `json:"respekt,omitempty" yaml:"respekt,omitempty"`
	Heat       int    `json:"polisbevakning,omitempty" yaml:"polisbevakning,omitempty"`
	Influence  int64  `json:"inflytande,omitempty" yaml:"inflytande,omitempty"`
	Experience int64  `json:"experience,omitempty" yaml:"experience,omitempty"`
	Loyalty    int    `json:"loyalty,omitempty" yaml:"loyalty,omitempty"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Choice is one option offered by a random event.
type Choice struct {
	ID                  string        `json:"id" yaml:"id"`
	Text                string        `json:"text" yaml:"text"`
	Requirements        *Requirements `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	SuccessChance       *int          `json:"successChance,omitempty" yaml:"successChance,omitempty"`
	SuccessConsequences Consequences  `json:"successConsequences" yaml:"successConsequences"`
	FailureConsequences *Consequences `json:"failureConsequences,omitempty" yaml:"failureConsequences,omitempty"`
}

// GameEvent is a random narrative event. Lifecycle: untriggered -> triggered -> resolved.
// Resolved events stay in the list for history.
type GameEvent struct {
	ID                string                         `json:"id" yaml:"id"`
	Type              EventType                      `json:"type" yaml:"type"`
	Title             string                         `json:"title" yaml:"title"`
	Description       string                         `json:"description" yaml:"description"`
	TriggerConditions conditionals.TriggerConditions `json:"triggerConditions" yaml:"triggerConditions"`
	Choices           []Choice                       `json:"choices" yaml:"choices"`
	Repeatable        bool                           `json:"repeatable,omitempty" yaml:"repeatable,omitempty"`
	Triggered         bool                           `json:"triggered" yaml:"-"`
	TriggeredAt       *time.Time                     `json:"triggeredAt,omitempty" yaml:"-"`
	LastTriggered     *time.Time                     `json:"lastTriggered,omitempty" yaml:"-"`
	Resolved          bool                           `json:"resolved" yaml:"-"`
	ResolvedAt        *time.Time                     `json:"resolvedAt,omitempty" yaml:"-"`
	ChosenChoiceID    *string                        `json:"chosenChoiceId,omitempty" yaml:"-"`
	Outcome           *bool                          `json:"outcome,omitempty" yaml:"-"`
}

// Choice returns the choice with the given id.
func (e *GameEvent) Choice(id string) (Choice, bool) {
	for _, c := range e.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// EventRecord is one entry in the resolved-event history.
type EventRecord struct {
	EventID   string    `json:"eventId"`
	Title     string    `json:"title"`
	ChoiceID  string    `json:"choiceId,omitempty"`
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
