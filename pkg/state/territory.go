package state

// Territory is a piece of the city the chapter can hold.
type Territory struct {
	ID           string          `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Status       TerritoryStatus `json:"status" yaml:"status"`
	Control      int             `json:"control" yaml:"control"`
	Income       int64           `json:"income" yaml:"income"`
	DefenseLevel int             `json:"defenseLevel" yaml:"defenseLevel"`
}

// TerritoryStats must always equal RecomputeTerritoryStats over the territory list.
type TerritoryStats struct {
	Controlled  int   `json:"controlled" yaml:"controlled"`
	Contested   int   `json:"contested" yaml:"contested"`
	Enemy       int   `json:"enemy" yaml:"enemy"`
	Neutral     int   `json:"neutral" yaml:"neutral"`
	TotalIncome int64 `json:"totalIncome" yaml:"totalIncome"`
}

func RecomputeTerritoryStats(territories []Territory) TerritoryStats {
	var st TerritoryStats
	for _, t := range territories {
		switch t.Status {
		case TerritoryControlled:
			st.Controlled++
			st.TotalIncome += t.Income
		case TerritoryContested:
			st.Contested++
		case TerritoryEnemy:
			st.Enemy++
		case TerritoryNeutral:
			st.Neutral++
		}
	}
	return st
}
