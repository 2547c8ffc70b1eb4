// Package project resolves the human-readable project label shown in
// notifications. The label comes from an explicit override, from the
// closest AGENTS.md above the working directory, or from a directory name.
package project

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ariel-frischer/tasknotify/internal/logging"
)

// AgentsFileName is the metadata file searched for in ancestor directories.
const AgentsFileName = "AGENTS.md"

var (
	// frontMatterKeyPattern matches "project_name: value" style keys inside front matter
	frontMatterKeyPattern = regexp.MustCompile(`(?i)^\s*(project_name|project|name|title)\s*:\s*(.+)$`)

	// labelPatterns are tried in order against every line of the document
	labelPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*project\s*name\s*[:：]\s*(.+?)\s*$`),
		regexp.MustCompile(`(?i)^\s*project\s*[:：]\s*(.+?)\s*$`),
		regexp.MustCompile(`^\s*项目名称\s*[:：]\s*(.+?)\s*$`),
		regexp.MustCompile(`^\s*项目名\s*[:：]\s*(.+?)\s*$`),
	}
)

// DetectionMethod indicates how the project name was obtained
type DetectionMethod string

const (
	// DetectionOverride indicates the caller supplied the name
	DetectionOverride DetectionMethod = "override"
	// DetectionFrontMatter indicates a front matter key in AGENTS.md
	DetectionFrontMatter DetectionMethod = "front_matter"
	// DetectionLabel indicates a "Project:" style line in AGENTS.md
	DetectionLabel DetectionMethod = "label"
	// DetectionAgentsDir indicates the directory containing AGENTS.md
	DetectionAgentsDir DetectionMethod = "agents_dir"
	// DetectionWorkingDir indicates the working directory name
	DetectionWorkingDir DetectionMethod = "working_dir"
)

// Resolution is the outcome of project name detection.
type Resolution struct {
	Name       string
	Detection  DetectionMethod
	AgentsFile string // path of the AGENTS.md consulted, if any
}

// Resolve returns the project name for cwd. It never fails: when nothing
// better is available the base name of cwd is used.
func Resolve(cwd, override string) string {
	return Detect(cwd, override).Name
}

// Detect resolves the project name and records how it was found.
//
// Resolution order:
//  1. a non-empty override, verbatim
//  2. the closest AGENTS.md in cwd or any ancestor:
//     a. front matter keys project_name, project, name, title
//     b. "Project Name:", "Project:", "项目名称:", "项目名:" lines
//     c. the base name of the directory holding AGENTS.md
//  3. the base name of cwd
func Detect(cwd, override string) Resolution {
	if override != "" {
		return Resolution{Name: override, Detection: DetectionOverride}
	}

	if abs, err := filepath.Abs(cwd); err == nil {
		cwd = abs
	}

	path, ok := FindAgentsFile(cwd)
	if !ok {
		logging.Log.Debug().Str("cwd", cwd).Msg("no AGENTS.md found, using working directory name")
		return Resolution{Name: filepath.Base(cwd), Detection: DetectionWorkingDir}
	}

	res := Resolution{AgentsFile: path}
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Log.Debug().Err(err).Str("path", path).Msg("cannot read AGENTS.md")
	} else if name, method, ok := extract(string(data)); ok {
		res.Name = name
		res.Detection = method
		logging.Log.Debug().Str("path", path).Str("detection", string(method)).Msg("project name from AGENTS.md")
		return res
	}

	res.Name = filepath.Base(filepath.Dir(path))
	res.Detection = DetectionAgentsDir
	return res
}

// FindAgentsFile looks for AGENTS.md in start and each of its ancestors,
// returning the closest regular file found.
func FindAgentsFile(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, AgentsFileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ExtractName pulls a project name out of AGENTS.md text. Front matter keys
// take precedence over label lines.
func ExtractName(text string) (string, bool) {
	name, _, ok := extract(text)
	return name, ok
}

func extract(text string) (string, DetectionMethod, bool) {
	lines := splitLines(text)

	if name := frontMatterName(lines); name != "" {
		return name, DetectionFrontMatter, true
	}

	for _, line := range lines {
		for _, pattern := range labelPatterns {
			if m := pattern.FindStringSubmatch(line); m != nil {
				if name := strings.TrimSpace(m[1]); name != "" {
					return name, DetectionLabel, true
				}
			}
		}
	}

	return "", "", false
}

// frontMatterName scans a leading "---" delimited block. An unterminated
// block is not front matter.
func frontMatterName(lines []string) string {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return ""
	}
	for end := 1; end < len(lines); end++ {
		if strings.TrimSpace(lines[end]) != "---" {
			continue
		}
		for _, line := range lines[1:end] {
			if m := frontMatterKeyPattern.FindStringSubmatch(line); m != nil {
				return stripQuotes(m[2])
			}
		}
		return ""
	}
	return ""
}

func stripQuotes(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			return strings.TrimSpace(value[1 : len(value)-1])
		}
	}
	return value
}

// splitLines decodes text leniently: invalid UTF-8 is dropped, a BOM is
// ignored and any of \r\n, \r, \n end a line.
func splitLines(text string) []string {
	text = strings.ToValidUTF8(text, "")
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
