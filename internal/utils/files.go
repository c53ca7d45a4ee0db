package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir output dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// ExpandInputs resolves glob patterns and literal paths into a sorted,
// de-duplicated file list.
func ExpandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

// UniqueOutputPath returns dir/<base-without-ext><suffix>, adding __2, __3 ...
// when the name is already taken on disk or in reserved.
func UniqueOutputPath(dir, input, suffix string, reserved map[string]struct{}) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	taken := func(p string) bool {
		if _, ok := reserved[p]; ok {
			return true
		}
		_, err := os.Stat(p)
		return err == nil
	}
	out := filepath.Join(dir, stem+suffix)
	for idx := 2; taken(out); idx++ {
		out = filepath.Join(dir, fmt.Sprintf("%s__%d%s", stem, idx, suffix))
	}
	if reserved != nil {
		reserved[out] = struct{}{}
	}
	return out
}

// Slug lower-cases s and keeps only [a-z0-9], mapping spaces, dashes and
// underscores to '-'. An empty result becomes "sheet".
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' {
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "sheet"
	}
	return out
}
