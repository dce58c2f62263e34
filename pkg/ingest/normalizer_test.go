package ingest

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"fort-chatbot-be/internal/constant"
	"fort-chatbot-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineText(t *testing.T) {
	fort := entity.Fort{
		Name:    "Raigad",
		Title:   "Raigad Fort",
		Summary: "Hill fort and capital of the Maratha empire.",
		InfoboxData: map[string]interface{}{
			"type":      "Hill fort",
			"elevation": float64(820),
		},
		Images: []string{"a.jpg", "b.jpg"},
	}

	got := CombineText(fort)
	assert.Equal(t, "Raigad | Raigad Fort | Hill fort and capital of the Maratha empire. | 820 Hill fort | a.jpg b.jpg", got)
}

func TestCombineTextSkipsEmptyAndNaN(t *testing.T) {
	fort := entity.Fort{
		Name:        "Lohagad",
		Summary:     "nan",
		InfoboxData: map[string]interface{}{"built": math.NaN()},
	}
	assert.Equal(t, "Lohagad", CombineText(fort))
}

func TestCleanMetadata(t *testing.T) {
	fort := entity.Fort{
		Name:   "  Sinha\u0007gad \n",
		Title:  "NaN",
		Images: []string{"", "x.png"},
		InfoboxData: map[string]interface{}{
			"type": "Hill fort",
		},
	}

	meta := CleanMetadata(fort)
	assert.Equal(t, "Sinhagad", meta["name"])
	assert.Equal(t, constant.MetadataNotSpecified, meta["title"])
	assert.Equal(t, constant.MetadataNotSpecified, meta["summary"])
	assert.Equal(t, "x.png", meta["images"])
	assert.NotContains(t, meta, "infobox_data")

	for k, v := range meta {
		assert.NotEmpty(t, v, "metadata %s must not be empty", k)
	}
}

func TestBatches(t *testing.T) {
	forts := make([]entity.Fort, 120)
	batches := Batches(forts, 50)

	require.Len(t, batches, 3)
	assert.Equal(t, 0, batches[0].Offset)
	assert.Len(t, batches[1].Forts, 50)
	assert.Equal(t, 100, batches[2].Offset)
	assert.Len(t, batches[2].Forts, 20)
	assert.Equal(t, []string{"100", "101"}, batches[2].IDs()[:2])

	assert.Empty(t, Batches(nil, 50))
}

func TestLoadRecordsWithNaN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forts.json")
	content := `[
		{"name": "Raigad", "title": "Raigad Fort", "summary": NaN, "infobox_data": {"height": NaN}, "images": []},
		{"name": "Say \"NaN\"", "title": "t", "summary": "s", "infobox_data": {}, "images": ["i.jpg"]}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	forts, err := LoadRecords(path)
	require.NoError(t, err)
	require.Len(t, forts, 2)
	assert.Equal(t, "", forts[0].Summary)
	assert.Nil(t, forts[0].InfoboxData["height"])
	assert.Equal(t, `Say "NaN"`, forts[1].Name)

	assert.Equal(t, constant.MetadataNotSpecified, CleanMetadata(forts[0])["summary"])
}

func TestCombineTextKeepsWordsContainingNan(t *testing.T) {
	fort := entity.Fort{Name: "Janjira", Summary: "Sea fort under maintenance"}
	assert.Equal(t, "Janjira | Sea fort under maintenance", CombineText(fort))
}
