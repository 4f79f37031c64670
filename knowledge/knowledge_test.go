package knowledge

import (
	"testing"

	"nyayasetu-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRelevantLawsCategoryOnly(t *testing.T) {
	kb := NewBase()

	laws := kb.FindRelevantLaws(nil, models.CategoryDomesticViolence)

	require.Len(t, laws, 3)
	assert.Equal(t, "IPC Section 498A", laws[0].Section)
	assert.Equal(t, "95%", laws[0].Relevance)
	assertSortedByRelevance(t, laws)
}

func TestFindRelevantLawsCrossCategoryIssue(t *testing.T) {
	kb := NewBase()

	laws := kb.FindRelevantLaws([]string{"dowry"}, models.CategoryDomesticViolence)

	require.Len(t, laws, 4)
	assert.Equal(t, "IPC Section 498A", laws[0].Section)
	// 50 base + 10 word match + 20 phrase match
	assert.Equal(t, "Dowry Prohibition Act, 1961", laws[3].Section)
	assert.Equal(t, "80%", laws[3].Relevance)
	assertSortedByRelevance(t, laws)
}

func TestFindRelevantLawsCappedAtFive(t *testing.T) {
	kb := NewBase()

	laws := kb.FindRelevantLaws([]string{"wages", "property"}, models.CategoryDomesticViolence)

	assert.Len(t, laws, 5)
	assertSortedByRelevance(t, laws)
}

func TestFindRelevantLawsNoDuplicateSections(t *testing.T) {
	kb := NewBase()

	// "cruelty" appears in the 498A texts already included by category
	laws := kb.FindRelevantLaws([]string{"cruelty"}, models.CategoryDomesticViolence)

	seen := make(map[string]bool)
	for _, law := range laws {
		assert.False(t, seen[law.Section], "duplicate section %s", law.Section)
		seen[law.Section] = true
	}
}

func TestFindRelevantLawsEmptyCategory(t *testing.T) {
	kb := NewBase()

	laws := kb.FindRelevantLaws(nil, models.CategoryFamilyLaw)

	assert.Empty(t, laws)
}

func TestSearchLaws(t *testing.T) {
	kb := NewBase()

	results := kb.SearchLaws("theft", nil)

	require.Len(t, results, 1)
	assert.Equal(t, "IPC Section 379", results[0].Section)
	assert.Equal(t, models.CategoryCriminalLaw, results[0].Category)
	// 50 phrase + 30 full word overlap
	assert.Equal(t, "80%", results[0].Relevance)
}

func TestSearchLawsCategoryFilter(t *testing.T) {
	kb := NewBase()
	category := models.CategoryLaborRights

	results := kb.SearchLaws("wages", &category)

	require.Len(t, results, 2)
	for _, result := range results {
		assert.Equal(t, models.CategoryLaborRights, result.Category)
		assert.Equal(t, "95%", result.Relevance)
	}
	// Equal scores keep statute declaration order
	assert.Equal(t, "Minimum Wages Act, 1948", results[0].Section)
}

func TestSearchLawsRelevanceCap(t *testing.T) {
	kb := NewBase()

	results := kb.SearchLaws("consumer", nil)

	require.NotEmpty(t, results)
	assert.Equal(t, "Consumer Protection Act, 2019", results[0].Section)
	assert.Equal(t, "95%", results[0].Relevance)
}

func TestSearchLawsNoMatch(t *testing.T) {
	kb := NewBase()

	results := kb.SearchLaws("spacecraft", nil)

	assert.Empty(t, results)
}

func TestCategories(t *testing.T) {
	kb := NewBase()

	infos := kb.Categories()

	require.Len(t, infos, 8)
	for _, info := range infos {
		assert.True(t, info.ID.Valid())
		assert.NotEmpty(t, info.Name)
		assert.NotEmpty(t, info.Keywords)
	}
}

func TestEmergencyContacts(t *testing.T) {
	kb := NewBase()

	contacts := kb.EmergencyContacts()

	assert.Equal(t, "100", contacts["police"].Number)
	assert.Equal(t, "1091", contacts["womenHelpline"].Number)
	assert.Equal(t, "9152987821", contacts["mentalHealth"].Number)
}

func TestLegalAidInfo(t *testing.T) {
	kb := NewBase()

	tests := []struct {
		name          string
		state         string
		wantAuthority string
	}{
		{
			name:          "known state",
			state:         "Delhi",
			wantAuthority: "Delhi State Legal Services Authority",
		},
		{
			name:          "unknown state falls back to national",
			state:         "Goa",
			wantAuthority: nationalLegalAid.Authority,
		},
		{
			name:          "empty state falls back to national",
			state:         "",
			wantAuthority: nationalLegalAid.Authority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantAuthority, kb.LegalAidInfo(tt.state).Authority)
		})
	}
}

func assertSortedByRelevance(t *testing.T, laws []models.SuggestedLaw) {
	t.Helper()
	for i := 1; i < len(laws); i++ {
		assert.GreaterOrEqual(t,
			relevanceValue(laws[i-1].Relevance),
			relevanceValue(laws[i].Relevance),
			"laws not sorted by descending relevance at index %d", i)
	}
}
