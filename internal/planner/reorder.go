package planner

import "github.com/julianstephens/daypad/internal/models"

// Half identifies which half of a target row the pointer was over on drop.
type Half int

const (
	HalfUpper Half = iota
	HalfLower
)

// Zone is a list-edge drop target.
type Zone int

const (
	ZoneTop Zone = iota
	ZoneBottom
)

func (z Zone) String() string {
	if z == ZoneTop {
		return "top"
	}
	return "bottom"
}

// DropHalf classifies a pointer position within a row.
func DropHalf(pointerY, rowTop, rowHeight float64) Half {
	if pointerY-rowTop < rowHeight/2 {
		return HalfUpper
	}
	return HalfLower
}

// ItemDropIndex returns the resting index of the dragged element when it is
// dropped on target: before it for the upper half, after it for the lower.
func ItemDropIndex(dragged, target int, half Half) int {
	raw := target
	if half == HalfLower {
		raw++
	}
	return settle(dragged, raw)
}

// ZoneDropIndex returns the resting index for a drop on the top or bottom zone
// of a list of length n.
func ZoneDropIndex(dragged, n int, zone Zone) int {
	raw := 0
	if zone == ZoneBottom {
		raw = n
	}
	return settle(dragged, raw)
}

// settle converts an insertion point in the original list into an index in
// the list with the dragged element already removed.
func settle(dragged, raw int) int {
	if dragged < raw {
		return raw - 1
	}
	return raw
}

// Splice returns a new slice with the element at from moved to index to.
func Splice(todos []models.TaskItem, from, to int) []models.TaskItem {
	out := make([]models.TaskItem, 0, len(todos))
	moved := todos[from]
	for i, t := range todos {
		if i != from {
			out = append(out, t)
		}
	}
	out = append(out, models.TaskItem{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out
}

// RemapSelection returns where a selection index ends up after the element
// at dragged moves to newIndex. A negative selection means none and is kept.
func RemapSelection(selection, dragged, newIndex int) int {
	switch {
	case selection < 0:
		return selection
	case selection == dragged:
		return newIndex
	case dragged < selection && selection <= newIndex:
		return selection - 1
	case newIndex <= selection && selection < dragged:
		return selection + 1
	default:
		return selection
	}
}

// RemapAfterDelete returns the selection after the element at removed is deleted.
func RemapAfterDelete(selection, removed int) int {
	switch {
	case selection < 0:
		return selection
	case selection == removed:
		return -1
	case selection > removed:
		return selection - 1
	default:
		return selection
	}
}
