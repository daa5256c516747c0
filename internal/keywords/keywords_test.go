package keywords

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_ObjectShape(t *testing.T) {
	p := writeFile(t, t.TempDir(), "keywords.json", `{"keywords": ["  air fryer ", "", "blender", "air fryer"]}`)
	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"air fryer", "blender", "air fryer"}, got)
}

func TestLoad_ArrayShape(t *testing.T) {
	p := writeFile(t, t.TempDir(), "keywords.json", `["one", "two", "   "]`)
	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestLoad_MissingWritesPlaceholder(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data", "keywords.json")

	got, err := Load(p)
	require.Error(t, err)
	assert.True(t, serrors.IsCategory(err, serrors.CategoryKeywords))
	assert.Empty(t, got)

	data, readErr := os.ReadFile(p)
	require.NoError(t, readErr)
	var shape fileShape
	require.NoError(t, json.Unmarshal(data, &shape))
	assert.Equal(t, []string{Placeholder}, shape.Keywords)

	// The placeholder is picked up by the next run.
	again, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{Placeholder}, again)
}

func TestLoad_InvalidJSONIsTreatedAsEmpty(t *testing.T) {
	p := writeFile(t, t.TempDir(), "keywords.json", `{"keywords": [1, 2`)
	got, err := Load(p)
	require.Error(t, err)
	assert.Empty(t, got)
}

func TestLimit(t *testing.T) {
	list := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "b"}, Limit(list, 2))
	assert.Equal(t, list, Limit(list, 10))
	assert.Empty(t, Limit(list, 0))
	assert.Empty(t, Limit(list, -1))
}
