package ui

import (
	"slices"

	"campushub/internal/domain"
	"campushub/internal/ui/views"
)

// The model is the input handler's read-only context

func (m *Model) CurrentIndex() int {
	_, st := m.current()
	return st.cursor
}

func (m *Model) TotalItems() int {
	_, st := m.current()
	return len(st.rows)
}

func (m *Model) CurrentEntityID() string {
	row, ok := m.currentRow()
	if !ok {
		return ""
	}
	return row.ID
}

func (m *Model) PageCount() int {
	return len(m.boards)
}

func (m *Model) Supports(kind domain.TransitionKind) bool {
	board, _ := m.current()
	return slices.Contains(board.Transitions(), kind)
}

func (m *Model) HasThreshold() bool {
	board, _ := m.current()
	return board.NumericLabel() != ""
}

func (m *Model) FilterText() string {
	board, _ := m.current()
	return board.Criteria().Text
}

func (m *Model) ThresholdText() string {
	board, _ := m.current()
	if t := board.Criteria().Threshold; t != nil {
		return views.FormatNumber(*t)
	}
	return ""
}
