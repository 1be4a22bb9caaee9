package mission

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Tree is a snapshot of a directory tree: slash-separated paths relative to
// the tree root, mapped to whether the entry is a directory.
type Tree map[string]bool

// Snapshot walks dir into a Tree. A missing dir yields an empty tree.
func Snapshot(dir string) (Tree, error) {
	tree := Tree{}

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		tree[filepath.ToSlash(rel)] = d.IsDir()

		return nil
	})
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return Tree{}, nil
	}
	if err != nil {
		return nil, err
	}

	return tree, nil
}

type OpKind int

const (
	OpDelete OpKind = iota
	OpMkdir
	OpCopy
)

type Op struct {
	Kind OpKind
	Rel  string
}

// Excluded reports whether rel matches any pattern. Patterns are glob-style
// and relative to the tree root; a trailing slash denotes a directory and
// everything beneath it.
func Excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		dirOnly := strings.HasSuffix(p, "/")
		q := strings.TrimSuffix(p, "/")

		if matchGlob(q, rel) {
			return true
		}

		if !dirOnly {
			continue
		}

		for anc := path.Dir(rel); anc != "." && anc != "/"; anc = path.Dir(anc) {
			if matchGlob(q, anc) {
				return true
			}
		}
	}

	return false
}

func matchGlob(pattern string, rel string) bool {
	ok, err := path.Match(pattern, rel)

	return err == nil && ok
}

// Plan computes the ordered operation list that converges dst toward src:
// deletions of entries absent from src, directory creations, then
// unconditional file copies. Excluded paths are never touched; a directory
// sheltering an excluded path is kept and only its non-excluded children are
// deleted. Deletions of paths inside an already-deleted directory are elided.
func Plan(src Tree, dst Tree, patterns []string) []Op {
	var deletes, mkdirs, copies []Op

	for rel, isDir := range dst {
		if Excluded(rel, patterns) {
			continue
		}

		srcIsDir, ok := src[rel]
		if ok && srcIsDir == isDir {
			continue
		}

		// Removing the directory wholesale would take the excluded path
		// with it; its children carry their own delete entries.
		if isDir && hasExcludedDescendant(rel, dst, patterns) {
			continue
		}

		// Covers both removal and a file/directory type change.
		deletes = append(deletes, Op{Kind: OpDelete, Rel: rel})
	}

	sortOps(deletes)
	deletes = elideNested(deletes)

	for rel, isDir := range src {
		if Excluded(rel, patterns) {
			continue
		}

		if isDir {
			if dstIsDir, ok := dst[rel]; ok && dstIsDir {
				continue
			}
			mkdirs = append(mkdirs, Op{Kind: OpMkdir, Rel: rel})

			continue
		}

		copies = append(copies, Op{Kind: OpCopy, Rel: rel})
	}

	sortOps(mkdirs)
	sortOps(copies)

	ops := make([]Op, 0, len(deletes)+len(mkdirs)+len(copies))
	ops = append(ops, deletes...)
	ops = append(ops, mkdirs...)
	ops = append(ops, copies...)

	return ops
}

func hasExcludedDescendant(rel string, dst Tree, patterns []string) bool {
	prefix := rel + "/"

	for p := range dst {
		if strings.HasPrefix(p, prefix) && Excluded(p, patterns) {
			return true
		}
	}

	return false
}

func sortOps(ops []Op) {
	sort.Slice(ops, func(i, j int) bool {
		return ops[i].Rel < ops[j].Rel
	})
}

func elideNested(deletes []Op) []Op {
	out := deletes[:0]
	last := ""

	for _, op := range deletes {
		if last != "" && strings.HasPrefix(op.Rel, last+"/") {
			continue
		}
		out = append(out, op)
		last = op.Rel
	}

	return out
}
