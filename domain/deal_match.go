package domain

// ListItem is a shopping-list entry as seen by the downstream matcher.
type ListItem struct {
	Name     string
	Category string
	ZipCode  string
}

// DealMatch is one ranked candidate deal for a list item.
type DealMatch struct {
	Deal  Deal
	Score float64
}
