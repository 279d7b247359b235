package deal_match_port

import "flyer-ingest/domain"

// DealMatcher ranks persisted deals (already filtered by ZIP and validity
// window) against a shopping-list item. It is implemented by the consumer
// of the flyers and deals tables, not by this service.
type DealMatcher interface {
	MatchDealsToListItem(item domain.ListItem, deals []domain.Deal) []domain.DealMatch
}
