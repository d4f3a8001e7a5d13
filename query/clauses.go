package query

import (
	"github.com/goccy/go-json"
)

// Expr is a node of the index query language. Implementations marshal
// themselves into the engine's JSON shape.
type Expr interface {
	isExpr()
}

// Clause is one boolean query fragment contributing to relevance when
// matched, weighted by its boost.
type Clause interface {
	Expr
	isClause()
}

// MatchClause is a full-text match on a single field.
type MatchClause struct {
	Field string
	Query string
	Boost float64
}

func (MatchClause) isExpr()   {}
func (MatchClause) isClause() {}

func (c MatchClause) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"match": map[string]any{
			c.Field: map[string]any{
				"query": c.Query,
				"boost": c.Boost,
			},
		},
	})
}

// TermClause is an exact-value match on a single field. The boost sits beside
// the term object, matching the wire shape the index accepts for penalty
// clauses.
type TermClause struct {
	Field string
	Value string
	Boost float64
}

func (TermClause) isExpr()   {}
func (TermClause) isClause() {}

func (c TermClause) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"term":  map[string]string{c.Field: c.Value},
		"boost": c.Boost,
	})
}

// BoolQuery is a boolean disjunction over should-clauses with a
// minimum-match constraint.
type BoolQuery struct {
	Should             []Clause
	MinimumShouldMatch int
}

func (BoolQuery) isExpr() {}

func (q BoolQuery) MarshalJSON() ([]byte, error) {
	should := q.Should
	if should == nil {
		should = []Clause{}
	}
	type body struct {
		Should             []Clause `json:"should"`
		MinimumShouldMatch int      `json:"minimum_should_match"`
	}
	return json.Marshal(map[string]body{
		"bool": {Should: should, MinimumShouldMatch: q.MinimumShouldMatch},
	})
}

// FunctionScoreQuery combines the base relevance score of its inner query
// with auxiliary signal scores: clause scores are combined per ScoreMode and
// folded into the base score per BoostMode.
type FunctionScoreQuery struct {
	Query     Expr
	ScoreMode string
	BoostMode string
}

func (FunctionScoreQuery) isExpr() {}

func (q FunctionScoreQuery) MarshalJSON() ([]byte, error) {
	type body struct {
		Query     Expr   `json:"query"`
		ScoreMode string `json:"score_mode"`
		BoostMode string `json:"boost_mode"`
	}
	return json.Marshal(map[string]body{
		"function_score": {Query: q.Query, ScoreMode: q.ScoreMode, BoostMode: q.BoostMode},
	})
}

// MultiMatchQuery is a full-text match across several fields.
type MultiMatchQuery struct {
	Query  string
	Fields []string
}

func (MultiMatchQuery) isExpr() {}

func (q MultiMatchQuery) MarshalJSON() ([]byte, error) {
	type body struct {
		Query  string   `json:"query"`
		Fields []string `json:"fields"`
	}
	return json.Marshal(map[string]body{
		"multi_match": {Query: q.Query, Fields: q.Fields},
	})
}

// SortClause orders results by one field.
type SortClause struct {
	Field string
	Order string
}

func (c SortClause) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string]string{
		c.Field: {"order": c.Order},
	})
}

// SearchRequest is the full request body posted to /{index}/_search.
type SearchRequest struct {
	Size   int          `json:"size"`
	Query  Expr         `json:"query"`
	Sort   []SortClause `json:"sort,omitempty"`
	Source []string     `json:"_source,omitempty"`
}
