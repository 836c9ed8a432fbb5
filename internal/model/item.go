package model

// Item is the domain model for a shopping-list entry.
// ID is assigned once at creation and never changes.
type Item struct {
	ID        string
	Name      string
	Checked   bool
	IsEditing bool
}
