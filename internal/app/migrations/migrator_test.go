package migrations

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "001", Version("001_create_users_table.sql"))
	assert.Equal(t, "010", Version("sql/010_add_index.sql"))
	assert.Equal(t, "noversion.sql", Version("noversion.sql"))
}

func TestPendingFilesSortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"m/002_b.sql": {Data: []byte("SELECT 2;")},
		"m/001_a.sql": {Data: []byte("SELECT 1;")},
		"m/README.md": {Data: []byte("docs")},
		"m/sub/x.sql": {Data: []byte("SELECT 3;")},
		"m/010_c.sql": {Data: []byte("SELECT 10;")},
	}

	files, err := PendingFiles(fsys, "m")
	require.NoError(t, err)
	assert.Equal(t, []string{"m/001_a.sql", "m/002_b.sql", "m/010_c.sql"}, files)
}

func TestEmbeddedSchema(t *testing.T) {
	files, err := PendingFiles(Files, Dir)
	require.NoError(t, err)
	require.Len(t, files, 7)

	seen := map[string]bool{}
	for _, f := range files {
		v := Version(f)
		assert.False(t, seen[v], "duplicate migration version %s", v)
		seen[v] = true
	}

	enrollments, err := Files.ReadFile(Dir + "/006_create_enrollments_table.sql")
	require.NoError(t, err)
	sql := string(enrollments)
	assert.True(t, strings.Contains(sql, "PRIMARY KEY (student_id, course_id)"))
	assert.Equal(t, 2, strings.Count(sql, "ON DELETE CASCADE"))
}
