package git

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// nextField cuts the next NUL-terminated token off out.
// NUL-delimited scanning avoids allocating a massive []string for repos
// with thousands of changed files.
func nextField(out string) (field, rest string) {
	nul := strings.IndexByte(out, '\x00')
	if nul < 0 {
		return out, ""
	}
	return out[:nul], out[nul+1:]
}

// ── Status parsing ──────────────────────────────────────────────────────────

// ParseStatusV2 parses `git status --porcelain=v2 -z`.
//
//	1 XY sub mH mI mW hH hI path
//	2 XY sub mH mI mW hH hI Xscore path\0origPath
//	u XY sub m1 m2 m3 mW h1 h2 h3 path
//	? path
//
// Ignored ("!") and header ("#") lines are skipped.
func ParseStatusV2(out string) []StatusRecord {
	if len(out) == 0 {
		return nil
	}
	records := make([]StatusRecord, 0, 32)

	for len(out) > 0 {
		var entry string
		entry, out = nextField(out)
		if len(entry) < 2 {
			continue
		}

		switch entry[0] {
		case '1':
			parts := strings.SplitN(entry, " ", 9)
			if len(parts) < 9 {
				continue
			}
			records = append(records, changedRecord(parts[1], parts[2], parts[8]))

		case '2':
			parts := strings.SplitN(entry, " ", 10)
			if len(parts) < 10 {
				continue
			}
			rec := changedRecord(parts[1], parts[2], parts[9])
			rec.OrigPath, out = nextField(out)
			records = append(records, rec)

		case 'u':
			parts := strings.SplitN(entry, " ", 11)
			if len(parts) < 11 {
				continue
			}
			rec := changedRecord(parts[1], parts[2], parts[10])
			rec.Conflict = true
			records = append(records, rec)

		case '?':
			records = append(records, StatusRecord{
				Path:      entry[2:],
				Index:     '?',
				Worktree:  '?',
				Untracked: true,
			})
		}
	}
	return records
}

func changedRecord(xy, sub, path string) StatusRecord {
	rec := StatusRecord{Path: path, Index: '.', Worktree: '.'}
	if len(xy) == 2 {
		rec.Index, rec.Worktree = xy[0], xy[1]
	}
	rec.Submodule = strings.HasPrefix(sub, "S")
	return rec
}

// ── Numstat parsing ─────────────────────────────────────────────────────────

// ParseNumStat parses `git diff --numstat -z`. Binary deltas are reported
// as "-\t-" and come back with Binary set. Rename entries (empty path
// followed by old and new path tokens) are keyed by the new path.
func ParseNumStat(out string) map[string]NumStat {
	stats := make(map[string]NumStat)
	for len(out) > 0 {
		var entry string
		entry, out = nextField(out)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "\t", 3)
		if len(parts) < 3 {
			continue
		}
		path := parts[2]
		if path == "" {
			_, out = nextField(out)
			path, out = nextField(out)
		}

		var ns NumStat
		if parts[0] == "-" || parts[1] == "-" {
			ns.Binary = true
		} else {
			ns.Added, _ = strconv.Atoi(parts[0])
			ns.Deleted, _ = strconv.Atoi(parts[1])
		}
		stats[path] = ns
	}
	return stats
}

// ── Patch parsing ───────────────────────────────────────────────────────────

// ParsePatch turns unified diff text into line-addressable rows.
//
// Lines outside a hunk are headers. A hunk header resets the new-side line
// counter; added and context lines consume it, deleted lines do not. The
// hunk's old/new lengths decide where it ends, so content that happens to
// look like a header is never misread. A binary delta yields BinaryDiff and
// any invalid UTF-8 yields InvalidUTF8Diff without partial output.
func ParsePatch(out string) DiffContent {
	if out == "" {
		return EmptyDiff
	}
	text := strings.TrimSuffix(out, "\n")
	lines := make([]DiffLine, 0, strings.Count(text, "\n")+1)

	var (
		inHunk           bool
		oldLeft, newLeft int
		lineNo           int
	)

	for _, line := range strings.Split(text, "\n") {
		if !utf8.ValidString(line) {
			return InvalidUTF8Diff
		}

		if inHunk {
			handled := true
			switch {
			case strings.HasPrefix(line, "+"):
				lines = append(lines, DiffLine{Kind: LineAdded, Content: line[1:], NewLineNo: lineNo})
				lineNo++
				newLeft--
			case strings.HasPrefix(line, "-"):
				lines = append(lines, DiffLine{Kind: LineDeleted, Content: line[1:]})
				oldLeft--
			case strings.HasPrefix(line, " "), line == "":
				lines = append(lines, DiffLine{Kind: LineContext, Content: strings.TrimPrefix(line, " "), NewLineNo: lineNo})
				lineNo++
				oldLeft--
				newLeft--
			case strings.HasPrefix(line, `\`):
				lines = append(lines, DiffLine{Kind: LineHeader, Content: line})
			default:
				handled = false
			}
			if handled {
				inHunk = oldLeft > 0 || newLeft > 0
				continue
			}
			inHunk = false
		}

		switch {
		case strings.HasPrefix(line, "@@"):
			oldLen, newStart, newLen := parseHunkHeader(line)
			lines = append(lines, DiffLine{Kind: LineHunk, Content: line})
			lineNo = newStart
			oldLeft, newLeft = oldLen, newLen
			inHunk = oldLeft > 0 || newLeft > 0
		case isBinaryMarker(line):
			return BinaryDiff
		default:
			lines = append(lines, DiffLine{Kind: LineHeader, Content: line})
		}
	}

	if len(lines) == 0 {
		return EmptyDiff
	}
	return DiffContent{Kind: DiffText, Lines: lines}
}

func isBinaryMarker(line string) bool {
	return line == "GIT binary patch" ||
		(strings.HasPrefix(line, "Binary files ") && strings.HasSuffix(line, " differ"))
}

// parseHunkHeader extracts the old length and new start/length from
// "@@ -a[,b] +c[,d] @@ ...". Omitted lengths default to 1.
func parseHunkHeader(line string) (oldLen, newStart, newLen int) {
	fields := strings.Fields(line)
	oldLen, newStart, newLen = 1, 1, 1
	for _, f := range fields[1:] {
		switch {
		case strings.HasPrefix(f, "-"):
			_, oldLen = parseRange(f[1:])
		case strings.HasPrefix(f, "+"):
			newStart, newLen = parseRange(f[1:])
		case strings.HasPrefix(f, "@@"):
			return oldLen, newStart, newLen
		}
	}
	return oldLen, newStart, newLen
}

func parseRange(s string) (start, length int) {
	length = 1
	if comma := strings.IndexByte(s, ','); comma >= 0 {
		length, _ = strconv.Atoi(s[comma+1:])
		s = s[:comma]
	}
	start, _ = strconv.Atoi(s)
	return start, length
}
