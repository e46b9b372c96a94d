package schedule

import (
	"strconv"

	"github.com/padelpoint/club-core/internal/model"
)

// ClassifyLevel resolves a player's numeric level against an instructor's
// ordered bands. The first band containing the level wins and is rendered
// as "<min>-<max>"; outside every band (or with no bands configured) the
// slot stays open.
func ClassifyLevel(ranges []model.LevelRange, level float64) string {
	for _, r := range ranges {
		if level >= r.MinLevel && level <= r.MaxLevel {
			return FormatRange(r)
		}
	}
	return model.LevelOpen
}

// FormatRange renders a band as "3-5" or "3.5-4.25"; trailing zeros are
// trimmed so whole levels read the way the club writes them.
func FormatRange(r model.LevelRange) string {
	return formatLevel(r.MinLevel) + "-" + formatLevel(r.MaxLevel)
}

func formatLevel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ClassifyGender maps a player's gender onto the slot category.
func ClassifyGender(gender string) string {
	switch gender {
	case model.GenderMale:
		return model.GenderMale
	case model.GenderFemale:
		return model.GenderFemale
	default:
		return model.GenderMixed
	}
}
