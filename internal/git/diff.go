package git

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Materialize returns the structured diff of a tracked path in the given
// section. Engine failures degrade to EmptyDiff; the diff pane is a preview
// and never the place to surface I/O errors.
func Materialize(eng Engine, path, oldPath string, section Section) DiffContent {
	out, err := eng.Diff(section, path, oldPath)
	if err != nil {
		return EmptyDiff
	}
	return ParsePatch(out)
}

// MaterializeUntracked synthesizes a new-file diff for an untracked path by
// reading it from the work tree. Content that is not valid UTF-8 yields
// InvalidUTF8Diff.
func MaterializeUntracked(eng Engine, path string) DiffContent {
	data, err := eng.ReadWorktreeFile(path)
	if err != nil {
		return EmptyDiff
	}
	if !utf8.Valid(data) {
		return InvalidUTF8Diff
	}

	body := physicalLines(string(data))
	lines := make([]DiffLine, 0, len(body)+5)
	lines = append(lines,
		DiffLine{Kind: LineHeader, Content: fmt.Sprintf("diff --git a/%s b/%s", path, path)},
		DiffLine{Kind: LineHeader, Content: "new file"},
		DiffLine{Kind: LineHeader, Content: "--- /dev/null"},
		DiffLine{Kind: LineHeader, Content: "+++ b/" + path},
	)
	if len(body) > 0 {
		lines = append(lines, DiffLine{Kind: LineHunk, Content: fmt.Sprintf("@@ -0,0 +1,%d @@", len(body))})
		for i, l := range body {
			lines = append(lines, DiffLine{Kind: LineAdded, Content: l, NewLineNo: i + 1})
		}
	}
	return DiffContent{Kind: DiffText, Lines: lines}
}

// CountLines returns the literal line count of file content. Content with
// a NUL byte is binary and counts 0; so does invalid UTF-8.
func CountLines(data []byte) (n int, binary bool) {
	if bytes.IndexByte(data, 0) >= 0 {
		return 0, true
	}
	if !utf8.Valid(data) {
		return 0, false
	}
	return len(physicalLines(string(data))), false
}

// physicalLines splits on "\n", dropping the empty tail after a final
// newline and a trailing "\r" on each line.
func physicalLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
