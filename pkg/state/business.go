package state

// Business is a front the chapter can buy, upgrade and staff with a manager.
type Business struct {
	ID                     string         `json:"id" yaml:"id"`
	Name                   string         `json:"name" yaml:"name"`
	Type                   string         `json:"type,omitempty" yaml:"type,omitempty"`
	Status                 BusinessStatus `json:"status" yaml:"status"`
	Level                  int            `json:"level" yaml:"level"`
	MaxLevel               int            `json:"maxLevel" yaml:"maxLevel"`
	PurchasePrice          int64          `json:"purchasePrice" yaml:"purchasePrice"`
	UpgradeCost            int64          `json:"upgradeCost" yaml:"upgradeCost"`
	RequiredLevel          int            `json:"requiredLevel" yaml:"requiredLevel"`
	RequiredRespekt        int            `json:"requiredRespekt" yaml:"requiredRespekt"`
	IncomePerTick          int64          `json:"incomePerTick" yaml:"incomePerTick"`
	Efficiency             int            `json:"efficiency" yaml:"efficiency"`
	HeatGeneration         int            `json:"heatGeneration" yaml:"heatGeneration"`
	RaidRisk               int            `json:"raidRisk" yaml:"raidRisk"`
	LaunderingCapacity     *int64         `json:"launderingCapacity,omitempty" yaml:"launderingCapacity,omitempty"`
	LaunderingFee          *float64       `json:"launderingFee,omitempty" yaml:"launderingFee,omitempty"`
	ManagerID              *string        `json:"managerId,omitempty" yaml:"managerId,omitempty"`
	PrerequisiteBusinesses []string       `json:"prerequisiteBusinesses,omitempty" yaml:"prerequisiteBusinesses,omitempty"`
}

// EffectiveIncome is the per-tick income weighted by efficiency.
func (b Business) EffectiveIncome() int64 {
	return b.IncomePerTick * int64(ClampPercent(b.Efficiency)) / 100
}

// BusinessStats must always equal RecomputeBusinessStats over the business list.
type BusinessStats struct {
	Owned                   int   `json:"owned" yaml:"owned"`
	Available               int   `json:"available" yaml:"available"`
	Locked                  int   `json:"locked" yaml:"locked"`
	TotalIncome             int64 `json:"totalIncome" yaml:"totalIncome"`
	TotalLaunderingCapacity int64 `json:"totalLaunderingCapacity" yaml:"totalLaunderingCapacity"`
}

func RecomputeBusinessStats(businesses []Business) BusinessStats {
	var st BusinessStats
	for _, b := range businesses {
		switch b.Status {
		case BusinessOwned:
			st.Owned++
			st.TotalIncome += b.IncomePerTick
			if b.LaunderingCapacity != nil {
				st.TotalLaunderingCapacity += *b.LaunderingCapacity
			}
		case BusinessAvailable:
			st.Available++
		case BusinessLocked:
			st.Locked++
		}
	}
	return st
}

// UnlockBusinesses makes locked businesses available once all of their
// prerequisites are owned. It reports whether anything changed.
func UnlockBusinesses(businesses []Business) bool {
	owned := make(map[string]bool, len(businesses))
	for _, b := range businesses {
		if b.Status == BusinessOwned {
			owned[b.ID] = true
		}
	}
	changed := false
	for i := range businesses {
		if businesses[i].Status != BusinessLocked {
			continue
		}
		ready := true
		for _, id := range businesses[i].PrerequisiteBusinesses {
			if !owned[id] {
				ready = false
				break
			}
		}
		if ready {
			businesses[i].Status = BusinessAvailable
			changed = true
		}
	}
	return changed
}
