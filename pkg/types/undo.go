package types

import "time"

// Undo operation types.
const (
	UndoAddButtons    = "add_buttons"
	UndoRemoveButtons = "remove_buttons"
	UndoResizePage    = "resize_page"
)

// UndoEntry records one mutating batch. The log holds a single slot;
// each applied batch overwrites the previous entry.
type UndoEntry struct {
	OperationID       string     `yaml:"operation_id"`
	OperationType     string     `yaml:"operation_type"`
	ProfileIndex      int        `yaml:"profile_index"`
	PageIndex         int        `yaml:"page_index"`
	AffectedPositions []Position `yaml:"affected_positions"`
	// Previous holds the prior occupant of each affected position,
	// index-aligned with AffectedPositions; nil means the slot was empty.
	Previous []*Button `yaml:"previous"`
	// PreviousRows and PreviousCols record the page dimensions before a
	// resize; zero for batches that did not change dimensions.
	PreviousRows int       `yaml:"previous_rows,omitempty"`
	PreviousCols int       `yaml:"previous_cols,omitempty"`
	Timestamp    time.Time `yaml:"timestamp"`
}
