package rank

import (
	"testing"

	"github.com/poiesic/persearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentWeight(t *testing.T) {
	profile := &core.UserProfile{
		SearchHistory:    []string{"compilers", "networks"},
		ClickedDocuments: map[string]int{"doc1": 3},
	}

	tests := []struct {
		name string
		doc  core.Document
		want float64
	}{
		{
			name: "title in history",
			doc:  core.Document{ID: "doc9", Title: "compilers"},
			want: 1,
		},
		{
			name: "no signals",
			doc:  core.Document{ID: "doc9", Title: "gardening"},
			want: 0,
		},
		{
			name: "clicked document",
			doc:  core.Document{ID: "doc1", Title: "gardening"},
			want: -3,
		},
		{
			name: "search and click combine",
			doc:  core.Document{ID: "doc1", Title: "networks"},
			want: -2,
		},
		{
			name: "title membership is exact",
			doc:  core.Document{ID: "doc9", Title: "compilers 101"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContentWeight(tt.doc, profile)
			assert.Equal(t, tt.want, got)

			// Deterministic and pure: same input, same weight.
			assert.Equal(t, got, ContentWeight(tt.doc, profile))
		})
	}
}

func TestByProfile_SearchedTitleFirst(t *testing.T) {
	docs := []core.Document{
		{ID: "1", Title: "x"},
		{ID: "2", Title: "y"},
	}
	profile := &core.UserProfile{
		SearchHistory:    []string{"y"},
		ClickedDocuments: map[string]int{},
	}

	ranked := ByProfile(docs, profile)

	require.Len(t, ranked, 2)
	assert.Equal(t, "2", ranked[0].ID)
	assert.Equal(t, "1", ranked[1].ID)
}

func TestByProfile_NilProfileUnchanged(t *testing.T) {
	docs := []core.Document{
		{ID: "1", Title: "x"},
		{ID: "2", Title: "y"},
	}

	ranked := ByProfile(docs, nil)
	assert.Equal(t, docs, ranked)
}

func TestByProfile_StableOnTies(t *testing.T) {
	docs := []core.Document{
		{ID: "1", Title: "a"},
		{ID: "2", Title: "b"},
		{ID: "3", Title: "c"},
	}

	ranked := ByProfile(docs, core.NewUserProfile())

	// All weights are 0: fetched order is preserved.
	require.Len(t, ranked, 3)
	assert.Equal(t, "1", ranked[0].ID)
	assert.Equal(t, "2", ranked[1].ID)
	assert.Equal(t, "3", ranked[2].ID)
}

func TestByProfile_ClickedSinks(t *testing.T) {
	docs := []core.Document{
		{ID: "clicked", Title: "seen before"},
		{ID: "fresh", Title: "unseen"},
	}
	profile := &core.UserProfile{
		SearchHistory:    []string{},
		ClickedDocuments: map[string]int{"clicked": 1},
	}

	ranked := ByProfile(docs, profile)
	assert.Equal(t, "fresh", ranked[0].ID)
	assert.Equal(t, "clicked", ranked[1].ID)
}

func TestByProfile_DoesNotMutateInput(t *testing.T) {
	docs := []core.Document{
		{ID: "1", Title: "x"},
		{ID: "2", Title: "y"},
	}
	profile := &core.UserProfile{
		SearchHistory:    []string{"y"},
		ClickedDocuments: map[string]int{},
	}

	_ = ByProfile(docs, profile)
	assert.Equal(t, "1", docs[0].ID)
}
