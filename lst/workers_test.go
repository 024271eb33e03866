package lst

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBatchWorkers exercises the worker pool for concurrency correctness.
// Run with -race flag to detect race conditions: go test -race
func TestBatchWorkers(t *testing.T) {
	tests := []struct {
		name      string
		fileCount int
		jobs      int
	}{
		{"single_file_single_worker", 1, 1},
		{"multiple_files_single_worker", 5, 1},
		{"multiple_files_multiple_workers", 10, 4},
		{"more_workers_than_files", 3, 10},
		{"many_files_high_concurrency", 50, 16},
		{"zero_jobs_defaults_to_cpus", 5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			expected := generateTestFiles(t, tmpDir, tc.fileCount)

			var calls int
			results, err := Batch(BatchOptions{
				Path:     tmpDir,
				Language: "cpp",
				Jobs:     tc.jobs,
				Progress: func(done, total int) {
					calls++
					require.Equal(t, calls, done)
					require.Equal(t, tc.fileCount, total)
				},
			})
			require.NoError(t, err)
			require.Len(t, results, tc.fileCount)
			require.Equal(t, tc.fileCount, calls)

			var got []string
			for _, res := range results {
				require.NoError(t, res.Err)
				require.NotNil(t, res.Tree)
				fn := findNode(res.Tree, KindFunction)
				require.NotNil(t, fn)
				got = append(got, fn.Name)
			}
			// Batch sorts results by display path, which matches the
			// generated numbering here.
			require.ElementsMatch(t, expected, got)
		})
	}
}

func TestBatchEmptyDir(t *testing.T) {
	results, err := Batch(BatchOptions{Path: t.TempDir(), Language: "cpp"})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestBatchUnknownLanguage(t *testing.T) {
	_, err := Batch(BatchOptions{Path: t.TempDir(), Language: "cobol"})
	require.Error(t, err)
}

func TestBatchIncludeExcludeGlobs(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "sub"), 0755))
	files := map[string]string{
		"a.cpp":     "void a() {}\n",
		"sub/b.cpp": "void b() {}\n",
		"sub/c.cpp": "void c() {}\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0644))
	}

	results, err := Batch(BatchOptions{
		Path:     tmpDir,
		Language: "cpp",
		Include:  []string{"sub/**"},
		Exclude:  []string{"sub/c.cpp"},
		Jobs:     1,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "sub/b.cpp", results[0].Job.DisplayPath)
}

func TestBatchSkipsOversizedFiles(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "big.cpp"),
		[]byte("void big() {}\n"), 0644))

	results, err := Batch(BatchOptions{
		Path:     tmpDir,
		Language: "cpp",
		MaxBytes: 4,
	})
	require.NoError(t, err)
	require.Empty(t, results)
}

// generateTestFiles creates N C++ files, each with a unique function.
// Returns the expected function names.
func generateTestFiles(t *testing.T, dir string, count int) []string {
	t.Helper()

	var expected []string
	for i := range count {
		funcName := fmt.Sprintf("Func%d", i)
		fileName := fmt.Sprintf("file_%d.cpp", i)
		content := fmt.Sprintf("void %s() {\n}\n", funcName)

		err := os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0644)
		require.NoError(t, err)

		expected = append(expected, funcName)
	}

	return expected
}
