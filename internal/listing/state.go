// Path: internal/listing/state.go
package listing

import "article-browser/internal/domain"

// Phase is the scroll/load phase of a listing.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseExhausted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// State is a point-in-time copy of a Controller.
type State struct {
	Phase      Phase
	Page       int64
	Loading    bool
	HasMore    bool
	SearchTerm string
	Articles   []domain.Article
	Selected   *domain.Article
	ModalOpen  bool
}
