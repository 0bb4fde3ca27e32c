package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/treestore/internal/core/domain"
)

func run(t *testing.T, ws []string, args ...string) result {
	t.Helper()
	return execute(t, context.Background(), strings.NewReader(""), append(ws, args...)...)
}

func TestSeedCmd(t *testing.T) {
	ws := workspace(t)

	res := run(t, ws, "seed")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Storage ready at "+ws[3])
	_, err := os.Stat(filepath.Join(ws[3], domain.DefaultGroup, domain.DefaultFile))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(ws[3], domain.SecondaryGroup))
	assert.NoError(t, err)
}

func TestGroupsCmd(t *testing.T) {
	ws := workspace(t)
	require.NoError(t, run(t, ws, "seed").err)

	res := run(t, ws, "groups")

	require.NoError(t, res.err)
	assert.Equal(t, domain.DefaultGroup+"\n"+domain.SecondaryGroup+"\n", res.stdout)
}

func TestGroupsCmd_JSON(t *testing.T) {
	ws := workspace(t)
	require.NoError(t, run(t, ws, "seed").err)

	res := run(t, ws, "groups", "--json")

	require.NoError(t, res.err)
	var groups []domain.GroupSummary
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, domain.DefaultGroup, groups[0].Name)
	assert.Equal(t, []string{}, groups[0].Files)
}

func TestGroupsCmd_SeedsMissingRoot(t *testing.T) {
	ws := []string{"--config-dir", t.TempDir(), "--root", filepath.Join(t.TempDir(), "fresh")}

	res := run(t, ws, "groups")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, domain.DefaultGroup)
}

func TestGroupsCmd_Memory(t *testing.T) {
	res := run(t, workspace(t), "--memory", "groups")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, domain.DefaultGroup)
	assert.Contains(t, res.stdout, domain.SecondaryGroup)
}

func TestFilesCmd(t *testing.T) {
	ws := workspace(t)
	require.NoError(t, run(t, ws, "seed").err)

	res := run(t, ws, "files", domain.DefaultGroup)
	require.NoError(t, res.err)
	assert.Equal(t, domain.DefaultFile+"\n", res.stdout)

	res = run(t, ws, "files", domain.SecondaryGroup, "--json")
	require.NoError(t, res.err)
	assert.JSONEq(t, `[]`, res.stdout)

	res = run(t, ws, "files", domain.SecondaryGroup)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No documents.")
}

func TestFilesCmd_RequiresGroup(t *testing.T) {
	res := run(t, workspace(t), "files")

	assert.Error(t, res.err)
}

func TestLoadCmd_Default(t *testing.T) {
	ws := workspace(t)
	require.NoError(t, run(t, ws, "seed").err)

	res := run(t, ws, "load")

	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "{\n  \"name\": \"Sophisticated_Root\""), res.stdout)
	assert.Empty(t, res.stderr)
}

func TestLoadCmd_MissingDocumentPrintsPlaceholder(t *testing.T) {
	ws := workspace(t)
	require.NoError(t, run(t, ws, "seed").err)

	res := run(t, ws, "load", domain.DefaultGroup, "missing.json")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Load_Error")
	assert.Contains(t, res.stderr, "printing placeholder")
}

func TestLoadCmd_Strict(t *testing.T) {
	ws := workspace(t)
	require.NoError(t, run(t, ws, "seed").err)

	res := run(t, ws, "load", "--strict", domain.DefaultGroup, "missing.json")

	assert.Error(t, res.err)
	assert.Empty(t, res.stdout)
}

func TestLoadCmd_WrongArgCount(t *testing.T) {
	res := run(t, workspace(t), "load", domain.DefaultGroup)

	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "accepts 0 or 2 args")
}

func TestSaveCmd_Data(t *testing.T) {
	ws := workspace(t)

	res := run(t, ws, "save", "Group_1", "tree.json", "--data", `{"name":"root","children":[]}`)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Saved Group_1/tree.json")

	res = run(t, ws, "load", "Group_1", "tree.json")
	require.NoError(t, res.err)
	assert.JSONEq(t, `{"name":"root","children":[]}`, res.stdout)
}

func TestSaveCmd_File(t *testing.T) {
	ws := workspace(t)
	src := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"name":"from file"}`), 0600))

	res := run(t, ws, "save", "Group_1", "tree.json", "--file", src)
	require.NoError(t, res.err)

	res = run(t, ws, "load", "Group_1", "tree.json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "from file")
}

func TestSaveCmd_Stdin(t *testing.T) {
	ws := workspace(t)

	res := execute(t, context.Background(), strings.NewReader(`[1, 2, 3]`),
		append(ws, "save", "Group_1", "list.json")...)
	require.NoError(t, res.err)

	res = run(t, ws, "load", "Group_1", "list.json")
	require.NoError(t, res.err)
	assert.JSONEq(t, `[1,2,3]`, res.stdout)
}

func TestSaveCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no data", []string{"save", "G", "f.json"}, errNoTreeData.Error()},
		{"invalid json", []string{"save", "G", "f.json", "--data", "{nope"}, "not valid JSON"},
		{"missing file", []string{"save", "G", "f.json", "--file", "/does/not/exist.json"}, "reading /does/not/exist.json"},
		{"traversal", []string{"save", "..", "f.json", "--data", "{}"}, "save failed"},
		{"both sources", []string{"save", "G", "f.json", "--data", "{}", "--file", "x"}, "none of the others can be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, workspace(t), tt.args...)

			require.Error(t, res.err)
			assert.Contains(t, res.err.Error(), tt.wantErr)
		})
	}
}

func TestSaveCmd_InvalidNameIsWriteFailure(t *testing.T) {
	res := run(t, workspace(t), "save", "a/b", "f.json", "--data", "{}")

	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, domain.ErrStorageWriteFailed)
}
