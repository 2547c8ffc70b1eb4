// Package project_test tests project name detection from overrides, AGENTS.md and directory names.
// Related: internal/project/resolver.go
// Tags: project, agents-md, front-matter, labels, fallback
package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAgents(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, AgentsFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// skipIfAncestorHasAgents skips tests that need a clean ancestor chain
func skipIfAncestorHasAgents(t *testing.T, dir string) {
	t.Helper()
	if path, ok := FindAgentsFile(filepath.Dir(dir)); ok {
		t.Skipf("ancestor %s already contains AGENTS.md", path)
	}
}

func TestExtractName(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text     string
		wantName string
		wantOK   bool
	}{
		"front matter project_name with double quotes": {
			text:     "---\nproject_name: \"Foo Bar\"\n---\n# Agents\n",
			wantName: "Foo Bar",
			wantOK:   true,
		},
		"front matter single quotes": {
			text:     "---\ntitle: 'Quoted'\n---\n",
			wantName: "Quoted",
			wantOK:   true,
		},
		"front matter key is case-insensitive": {
			text:     "---\nProject: Alpha\n---\n",
			wantName: "Alpha",
			wantOK:   true,
		},
		"first matching front matter key wins": {
			text:     "---\nauthor: me\nname: First\nproject_name: Second\n---\n",
			wantName: "First",
			wantOK:   true,
		},
		"mismatched quotes are kept": {
			text:     "---\nname: \"Half'\n---\n",
			wantName: "\"Half'",
			wantOK:   true,
		},
		"front matter beats labels": {
			text:     "---\nname: FromFront\n---\nProject: FromLabel\n",
			wantName: "FromFront",
			wantOK:   true,
		},
		"front matter without keys falls through to labels": {
			text:     "---\nauthor: me\n---\nProject Name: Beta\n",
			wantName: "Beta",
			wantOK:   true,
		},
		"unterminated front matter is scanned as labels": {
			text:     "---\nname: Ignored\nProject: Gamma\n",
			wantName: "Gamma",
			wantOK:   true,
		},
		"project name label": {
			text:     "# Notes\n  project   name :  Delta  \n",
			wantName: "Delta",
			wantOK:   true,
		},
		"full-width colon": {
			text:     "Project：Epsilon\n",
			wantName: "Epsilon",
			wantOK:   true,
		},
		"chinese project name label": {
			text:     "说明\n项目名称：智能助手\n",
			wantName: "智能助手",
			wantOK:   true,
		},
		"chinese short label": {
			text:     "项目名: 工具箱\n",
			wantName: "工具箱",
			wantOK:   true,
		},
		"first matching line wins": {
			text:     "Project: One\nProject Name: Two\n",
			wantName: "One",
			wantOK:   true,
		},
		"crlf line endings": {
			text:     "---\r\nproject_name: Windows\r\n---\r\n",
			wantName: "Windows",
			wantOK:   true,
		},
		"byte order mark": {
			text:     "\ufeff---\nname: Bom\n---\n",
			wantName: "Bom",
			wantOK:   true,
		},
		"invalid utf-8 is dropped": {
			text:     "Project: Caf\xffe\n",
			wantName: "Cafe",
			wantOK:   true,
		},
		"label text is not anchored mid-line": {
			text:     "The Project: is described below\n",
			wantName: "",
			wantOK:   false,
		},
		"nothing to extract": {
			text:     "# Agents\nBe nice.\n",
			wantName: "",
			wantOK:   false,
		},
		"empty document": {
			text:   "",
			wantOK: false,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, ok := ExtractName(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, got)
		})
	}
}

func TestFindAgentsFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	outer := writeAgents(t, root, "Project: Outer\n")
	inner := writeAgents(t, filepath.Join(root, "a"), "Project: Inner\n")
	deep := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	t.Run("closest ancestor wins", func(t *testing.T) {
		t.Parallel()
		got, ok := FindAgentsFile(deep)
		require.True(t, ok)
		assert.Equal(t, inner, got)
	})

	t.Run("file in start directory", func(t *testing.T) {
		t.Parallel()
		got, ok := FindAgentsFile(root)
		require.True(t, ok)
		assert.Equal(t, outer, got)
	})

	t.Run("directory named AGENTS.md is ignored", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		skipIfAncestorHasAgents(t, dir)
		require.NoError(t, os.Mkdir(filepath.Join(dir, AgentsFileName), 0o755))

		_, ok := FindAgentsFile(dir)
		assert.False(t, ok)
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("override is returned verbatim", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeAgents(t, dir, "Project: Ignored\n")
		assert.Equal(t, "  My Project ", Resolve(dir, "  My Project "))
	})

	t.Run("ancestor front matter regardless of intervening directories", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeAgents(t, root, "---\nproject_name: \"Foo Bar\"\n---\n")
		cwd := filepath.Join(root, "some", "nested", "dir")
		require.NoError(t, os.MkdirAll(cwd, 0o755))

		res := Detect(cwd, "")
		assert.Equal(t, "Foo Bar", res.Name)
		assert.Equal(t, DetectionFrontMatter, res.Detection)
		assert.Equal(t, filepath.Join(root, AgentsFileName), res.AgentsFile)
	})

	t.Run("label detection", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeAgents(t, root, "项目名称: 看板\n")

		res := Detect(root, "")
		assert.Equal(t, "看板", res.Name)
		assert.Equal(t, DetectionLabel, res.Detection)
	})

	t.Run("agents file without a name falls back to its directory", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		repo := filepath.Join(root, "my-repo")
		writeAgents(t, repo, "# Guidelines\n")
		cwd := filepath.Join(repo, "pkg")
		require.NoError(t, os.MkdirAll(cwd, 0o755))

		res := Detect(cwd, "")
		assert.Equal(t, "my-repo", res.Name)
		assert.Equal(t, DetectionAgentsDir, res.Detection)
	})

	t.Run("no agents file falls back to working directory", func(t *testing.T) {
		t.Parallel()
		cwd := filepath.Join(t.TempDir(), "workspace-name")
		require.NoError(t, os.MkdirAll(cwd, 0o755))
		skipIfAncestorHasAgents(t, cwd)

		res := Detect(cwd, "")
		assert.Equal(t, "workspace-name", res.Name)
		assert.Equal(t, DetectionWorkingDir, res.Detection)
		assert.Empty(t, res.AgentsFile)
	})

	t.Run("whitespace override is returned verbatim", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeAgents(t, dir, "Project: Ignored\n")

		res := Detect(dir, "  ")
		assert.Equal(t, "  ", res.Name)
		assert.Equal(t, DetectionOverride, res.Detection)
		assert.Empty(t, res.AgentsFile)
	})

	t.Run("empty override falls through to detection", func(t *testing.T) {
		t.Parallel()
		cwd := filepath.Join(t.TempDir(), "no-override")
		require.NoError(t, os.MkdirAll(cwd, 0o755))
		skipIfAncestorHasAgents(t, cwd)

		assert.Equal(t, "no-override", Resolve(cwd, ""))
	})

	t.Run("unreadable agents file falls back to its directory", func(t *testing.T) {
		t.Parallel()
		if os.Geteuid() == 0 {
			t.Skip("root can read any file")
		}
		root := filepath.Join(t.TempDir(), "locked")
		path := writeAgents(t, root, "Project: Secret\n")
		require.NoError(t, os.Chmod(path, 0o000))

		assert.Equal(t, "locked", Resolve(root, ""))
	})
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "b", "c"}, splitLines("a\r\nb\rc\n"))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb"))
	assert.False(t, strings.Contains(strings.Join(splitLines("x\xfe\xffy"), ""), "\xff"))
}
