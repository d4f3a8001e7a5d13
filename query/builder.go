package query

import (
	"sort"

	"github.com/poiesic/persearch/core"
)

// Boost and sizing constants of the personalization queries.
const (
	// HistoryBoost is the positive boost applied to every term from the
	// user's search history.
	HistoryBoost = 2.0

	// ClickPenaltyStep scales the negative boost of a clicked document:
	// boost = -count * ClickPenaltyStep, so more clicks push harder.
	ClickPenaltyStep = 0.5

	// RecommendationSize caps the candidate volume fetched from the index
	// before client-side truncation.
	RecommendationSize = 100

	// MinShouldMatch requires at least one should-clause to match.
	MinShouldMatch = 1
)

// recommendationSource restricts returned fields to what the display layer
// renders.
var recommendationSource = []string{"title", "description", "keywords", "html_filename"}

// defaultSort orders results by dynamic score, breaking ties with the static
// page rank.
func defaultSort() []SortClause {
	return []SortClause{
		{Field: "_score", Order: "desc"},
		{Field: "pr", Order: "desc"},
	}
}

// BuildRecommendationQuery translates a user profile into the boosted
// recommendation request.
//
// Every history term becomes a content match-clause with HistoryBoost; every
// clicked document becomes an identifier term-clause with a negative boost
// growing with its click count, so already-seen pages sink. Clauses combine
// under a should-disjunction requiring at least one match, wrapped in a
// function-score that sums clause scores and multiplies them into the base
// relevance.
//
// A nil or empty profile yields zero should-clauses. The request stays
// syntactically valid and is sent as-is; the index simply finds nothing to
// match, and the caller surfaces an empty recommendation list.
func BuildRecommendationQuery(p *core.UserProfile) *SearchRequest {
	should := []Clause{}

	if p != nil {
		for _, term := range p.SearchHistory {
			should = append(should, MatchClause{
				Field: "content",
				Query: term,
				Boost: HistoryBoost,
			})
		}

		// Stable clause order regardless of map iteration.
		clicked := make([]string, 0, len(p.ClickedDocuments))
		for docID := range p.ClickedDocuments {
			clicked = append(clicked, docID)
		}
		sort.Strings(clicked)
		for _, docID := range clicked {
			should = append(should, TermClause{
				Field: "_id",
				Value: docID,
				Boost: -float64(p.ClickedDocuments[docID]) * ClickPenaltyStep,
			})
		}
	}

	return &SearchRequest{
		Size: RecommendationSize,
		Query: FunctionScoreQuery{
			Query: BoolQuery{
				Should:             should,
				MinimumShouldMatch: MinShouldMatch,
			},
			ScoreMode: "sum",
			BoostMode: "multiply",
		},
		Sort:   defaultSort(),
		Source: recommendationSource,
	}
}

// BuildSearchQuery builds the plain full-text request for a user-typed query:
// a multi-field match over title, keywords, description, and content, sorted
// by score then static rank.
func BuildSearchQuery(text string, size int) *SearchRequest {
	return &SearchRequest{
		Size: size,
		Query: MultiMatchQuery{
			Query:  text,
			Fields: []string{"title^3", "keywords^2", "description^2", "content"},
		},
		Sort: defaultSort(),
	}
}
