package domain

import (
	"fmt"
	"time"
)

type Year = int

// Month is 1..12 for monthly records and AnnualMonth for yearly ones.
type Month = int

const AnnualMonth Month = 0

// Level is the position of an entity in the plant -> company -> national hierarchy.
type Level string

const (
	LevelPlant    Level = "plant"
	LevelCompany  Level = "company"
	LevelNational Level = "national"
)

func (l Level) Valid() bool {
	switch l {
	case LevelPlant, LevelCompany, LevelNational:
		return true
	}
	return false
}

// Next returns the level records of l aggregate into.
func (l Level) Next() (Level, bool) {
	switch l {
	case LevelPlant:
		return LevelCompany, true
	case LevelCompany:
		return LevelNational, true
	}
	return "", false
}

func (l Level) rank() int {
	switch l {
	case LevelPlant:
		return 0
	case LevelCompany:
		return 1
	case LevelNational:
		return 2
	}
	return -1
}

// Above reports whether l sits higher in the hierarchy than other.
func (l Level) Above(other Level) bool {
	return l.rank() > other.rank()
}

type IndicatorRecord struct {
	Level         Level     `db:"level" json:"level"`
	EntityID      string    `db:"entity_id" json:"entity_id"`
	IndicatorCode string    `db:"indicator_code" json:"indicator_code"`
	Year          Year      `db:"year" json:"year"`
	Month         Month     `db:"month" json:"month"`
	Value         float64   `db:"value" json:"value"`
	Contributors  int       `db:"contributors" json:"contributors"`
	Source        string    `db:"source" json:"source"`
	CreatedAt     time.Time `db:"created_at" json:"created_at,omitempty"`
}

// RecordKey identifies a record within one aggregation level.
type RecordKey struct {
	EntityID      string `json:"entity_id"`
	IndicatorCode string `json:"indicator_code"`
	Year          Year   `json:"year"`
	Month         Month  `json:"month"`
}

func (r IndicatorRecord) Key() RecordKey {
	return RecordKey{EntityID: r.EntityID, IndicatorCode: r.IndicatorCode, Year: r.Year, Month: r.Month}
}

func (k RecordKey) String() string {
	if k.Month == AnnualMonth {
		return fmt.Sprintf("%s/%s/%d", k.EntityID, k.IndicatorCode, k.Year)
	}
	return fmt.Sprintf("%s/%s/%d-%02d", k.EntityID, k.IndicatorCode, k.Year, k.Month)
}

// Less orders keys by entity, indicator, year and month.
func (k RecordKey) Less(other RecordKey) bool {
	if k.EntityID != other.EntityID {
		return k.EntityID < other.EntityID
	}
	if k.IndicatorCode != other.IndicatorCode {
		return k.IndicatorCode < other.IndicatorCode
	}
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}
