package model

// BadgeVariant is the display category behind a status/priority/action label.
//
// The mapping is an explicit exhaustive switch rather than a string derivation
// from the wire value: an enum value the UI does not know about falls back to
// BadgeNeutral in exactly one place instead of silently producing an unstyled
// label per call site.
type BadgeVariant int

const (
	BadgeNeutral BadgeVariant = iota
	BadgePending
	BadgeInProgress
	BadgeCompleted
	BadgeLow
	BadgeMedium
	BadgeHigh
	BadgeCritical
	BadgeCreate
	BadgeChange
	BadgeDelete
)

func (s Status) Badge() BadgeVariant {
	switch s {
	case StatusPending:
		return BadgePending
	case StatusInProgress:
		return BadgeInProgress
	case StatusCompleted:
		return BadgeCompleted
	}
	return BadgeNeutral
}

func (p Priority) Badge() BadgeVariant {
	switch p {
	case PriorityLow:
		return BadgeLow
	case PriorityMedium:
		return BadgeMedium
	case PriorityHigh:
		return BadgeHigh
	case PriorityCritical:
		return BadgeCritical
	}
	return BadgeNeutral
}

func (a HistoryAction) Badge() BadgeVariant {
	switch a {
	case HistoryCreated:
		return BadgeCreate
	case HistoryDeleted:
		return BadgeDelete
	case HistoryStatusChanged, HistoryTitleChanged, HistoryAssigned, HistoryPriorityChanged, HistoryUpdated:
		return BadgeChange
	}
	return BadgeNeutral
}
