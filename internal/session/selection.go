package session

import "sort"

// SlotSelection tracks which of a screen's slots a bulk upload targets. At
// least one slot stays selected at all times: the last remaining slot cannot
// be toggled off.
type SlotSelection struct {
	slots    []int
	selected map[int]bool
}

// NewSlotSelection creates a selection over slots 1..slotCount with every
// slot selected.
func NewSlotSelection(slotCount int) *SlotSelection {
	selection := &SlotSelection{selected: make(map[int]bool, slotCount)}
	for slot := 1; slot <= slotCount; slot++ {
		selection.slots = append(selection.slots, slot)
		selection.selected[slot] = true
	}
	return selection
}

// Toggle flips a slot's membership. Toggling off the last selected slot is
// refused; the return value reports whether the state changed.
func (s *SlotSelection) Toggle(slot int) bool {
	current, known := s.selected[slot]
	if !known {
		return false
	}
	if current && s.Count() == 1 {
		return false
	}
	s.selected[slot] = !current
	return true
}

// IsSelected reports whether a slot is part of the selection.
func (s *SlotSelection) IsSelected(slot int) bool {
	return s.selected[slot]
}

// Count returns the number of selected slots.
func (s *SlotSelection) Count() int {
	count := 0
	for _, on := range s.selected {
		if on {
			count++
		}
	}
	return count
}

// Selected returns the selected slot numbers in ascending order.
func (s *SlotSelection) Selected() []int {
	var out []int
	for slot, on := range s.selected {
		if on {
			out = append(out, slot)
		}
	}
	sort.Ints(out)
	return out
}
