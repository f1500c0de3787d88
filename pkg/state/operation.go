package state

import "slices"

// Operation is a standing activity that pays out or cools heat every tick while active.
type Operation struct {
	ID                   string          `json:"id" yaml:"id"`
	Name                 string          `json:"name" yaml:"name"`
	Type                 OperationType   `json:"type" yaml:"type"`
	Status               OperationStatus `json:"status" yaml:"status"`
	Level                int             `json:"level" yaml:"level"`
	MaxLevel             int             `json:"maxLevel" yaml:"maxLevel"`
	Efficiency           int             `json:"efficiency" yaml:"efficiency"`
	ActivationCost       int64           `json:"activationCost" yaml:"activationCost"`
	UpgradeCost          int64           `json:"upgradeCost" yaml:"upgradeCost"`
	IncomePerTick        *int64          `json:"incomePerTick,omitempty" yaml:"incomePerTick,omitempty"`
	HeatReductionPerTick *int            `json:"heatReductionPerTick,omitempty" yaml:"heatReductionPerTick,omitempty"`
	MaxMembers           int             `json:"maxMembers" yaml:"maxMembers"`
	AssignedMemberIDs    []string        `json:"assignedMemberIds" yaml:"assignedMemberIds"`
}

// HasMember reports whether the member is assigned to the operation.
func (o Operation) HasMember(id string) bool {
	return slices.Contains(o.AssignedMemberIDs, id)
}

// OperationStats must always equal RecomputeOperationStats over the operation list.
type OperationStats struct {
	Active             int   `json:"active" yaml:"active"`
	TotalIncome        int64 `json:"totalIncome" yaml:"totalIncome"`
	TotalHeatReduction int   `json:"totalHeatReduction" yaml:"totalHeatReduction"`
}

func RecomputeOperationStats(ops []Operation) OperationStats {
	var st OperationStats
	for _, o := range ops {
		switch o.Status {
		case OperationActive:
			st.Active++
			if o.IncomePerTick != nil {
				st.TotalIncome += *o.IncomePerTick
			}
			if o.HeatReductionPerTick != nil {
				st.TotalHeatReduction += *o.HeatReductionPerTick
			}
		case OperationCooldown, OperationReady:
		}
	}
	return st
}
