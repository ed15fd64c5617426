package model

// SecondsPerDay bounds the "untracked" slice of a day.
const SecondsPerDay = 24 * 60 * 60

// DailyTotals holds accumulated seconds per category for one day key.
// It is a value type: every copy is a snapshot.
type DailyTotals struct {
	Productive int64 `bson:"productive" json:"productive"`
	Personal   int64 `bson:"personal" json:"personal"`
	Sleep      int64 `bson:"sleep" json:"sleep"`
}

func (t DailyTotals) Get(c Category) int64 {
	switch c {
	case CategoryProductive:
		return t.Productive
	case CategoryPersonal:
		return t.Personal
	case CategorySleep:
		return t.Sleep
	}
	return 0
}

// Add returns a copy of t with seconds added to c. Unknown categories are ignored.
func (t DailyTotals) Add(c Category, seconds int64) DailyTotals {
	switch c {
	case CategoryProductive:
		t.Productive += seconds
	case CategoryPersonal:
		t.Personal += seconds
	case CategorySleep:
		t.Sleep += seconds
	}
	return t
}

func (t DailyTotals) Total() int64 {
	return t.Productive + t.Personal + t.Sleep
}

// Untracked is the part of the day not covered by any category, never negative.
// Totals are not clamped, so a day recorded across devices can exceed 24h.
func (t DailyTotals) Untracked() int64 {
	if rest := SecondsPerDay - t.Total(); rest > 0 {
		return rest
	}
	return 0
}

func (t DailyTotals) IsZero() bool {
	return t == DailyTotals{}
}
