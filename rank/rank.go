package rank

import (
	"sort"

	"github.com/poiesic/persearch/core"
)

// ContentWeight is the pure profile-derived weight of a document:
// +1 when the document title appears verbatim in the search history, minus
// the click count of the document. Prior clicks strictly reduce weight so
// already-seen pages are not resurfaced; there is no clamp, heavy clicking
// amounts to permanent suppression.
func ContentWeight(doc core.Document, p *core.UserProfile) float64 {
	var w float64
	if p.Searched(doc.Title) {
		w += 1
	}
	w -= float64(p.ClickCount(doc.ID))
	return w
}

// ByProfile re-sorts a fetched result list by descending content weight.
// The sort is stable: documents of equal weight keep their fetched order, so
// re-ranking is deterministic. A nil profile (anonymous session) returns the
// input unchanged.
func ByProfile(docs []core.Document, p *core.UserProfile) []core.Document {
	if p == nil {
		return docs
	}

	out := make([]core.Document, len(docs))
	copy(out, docs)
	sort.SliceStable(out, func(i, j int) bool {
		return ContentWeight(out[i], p) > ContentWeight(out[j], p)
	})
	return out
}
