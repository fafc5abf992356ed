// Package gitwatch turns local git repositories into a stream of activity
// events. It discovers repos, remembers each repo's last HEAD, and reports
// commits it has not seen before; ref watching is handled by Watcher.
package gitwatch

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"kanitomo/internal/wellbeing"
)

// backfillLimit bounds the commit walk per repo when rebuilding history.
const backfillLimit = 2000

// Commit is one newly observed commit. RepoDir identifies the repository the
// same way Backfill's records do, so a commit maps to one source id no matter
// how it was observed.
type Commit struct {
	Hash     string
	When     time.Time
	RepoDir  string
	RepoName string
}

type trackedRepo struct {
	name   string
	dir    string
	gitDir string
	repo   *git.Repository
}

// Tracker follows one or more repositories.
type Tracker struct {
	repos     []trackedRepo
	lastHeads map[string]string
}

// Discover finds repositories starting at root: if root is inside a git
// working tree that single repo is tracked, otherwise the immediate
// subdirectories of root are scanned. Repos are ordered by name so output is
// stable.
func Discover(root string) *Tracker {
	t := &Tracker{lastHeads: make(map[string]string)}

	if dir, ok := findWorkTree(root); ok {
		t.add(dir)
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			log.Printf("Scanning %s: %v", root, err)
			return t
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			t.add(filepath.Join(root, entry.Name()))
		}
	}

	sort.Slice(t.repos, func(i, j int) bool { return t.repos[i].name < t.repos[j].name })

	for _, r := range t.repos {
		if hash, err := headHash(r.repo); err == nil {
			t.lastHeads[r.dir] = hash
		}
	}
	return t
}

func (t *Tracker) add(dir string) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	t.repos = append(t.repos, trackedRepo{
		name:   filepath.Base(abs),
		dir:    dir,
		gitDir: filepath.Join(dir, git.GitDirName),
		repo:   repo,
	})
}

// findWorkTree walks up from dir looking for a .git directory.
func findWorkTree(dir string) (string, bool) {
	cur, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		if info, err := os.Stat(filepath.Join(cur, git.GitDirName)); err == nil && info.IsDir() {
			return cur, true
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", false
		}
		cur = parent
	}
}

// RepoCount returns how many repositories are tracked.
func (t *Tracker) RepoCount() int {
	return len(t.repos)
}

// RepoNames returns tracked repository names in stable order.
func (t *Tracker) RepoNames() []string {
	names := make([]string, 0, len(t.repos))
	for _, r := range t.repos {
		names = append(names, r.name)
	}
	return names
}

// GitDirs returns each repo's .git directory, for ref watching.
func (t *Tracker) GitDirs() []string {
	dirs := make([]string, 0, len(t.repos))
	for _, r := range t.repos {
		dirs = append(dirs, r.gitDir)
	}
	return dirs
}

// CheckNewCommits compares each repo's HEAD with the last one seen and
// returns newly observed commits. Deduplication by hash is the caller's
// concern; this only reports head movement.
func (t *Tracker) CheckNewCommits() []Commit {
	var out []Commit
	for _, r := range t.repos {
		hash, err := headHash(r.repo)
		if err != nil {
			continue
		}
		if old, ok := t.lastHeads[r.dir]; ok && old == hash {
			continue
		}
		t.lastHeads[r.dir] = hash

		obj, err := r.repo.CommitObject(plumbingHash(hash))
		when := time.Now()
		if err == nil {
			when = obj.Committer.When
		}
		out = append(out, Commit{Hash: hash, When: when, RepoDir: r.dir, RepoName: r.name})
	}
	return out
}

func headHash(r *git.Repository) (string, error) {
	ref, err := r.Head()
	if err != nil {
		return "", err
	}
	return ref.Hash().String(), nil
}

func plumbingHash(s string) plumbing.Hash {
	return plumbing.NewHash(s)
}

// Backfill walks each repo's log and returns activity records for commits
// since the given time, newest-first per repo. Used at startup so streaks
// survive sessions when the pet was not running.
func (t *Tracker) Backfill(since time.Time) []wellbeing.ActivityRecord {
	var out []wellbeing.ActivityRecord
	for _, r := range t.repos {
		iter, err := r.repo.Log(&git.LogOptions{})
		if err != nil {
			continue
		}
		count := 0
		err = iter.ForEach(func(c *object.Commit) error {
			if c.Committer.When.Before(since) || count >= backfillLimit {
				return storer.ErrStop
			}
			count++
			out = append(out, wellbeing.ActivityRecord{
				Timestamp:  c.Committer.When,
				ActivityID: c.Hash.String(),
				SourceID:   r.dir,
				SourceName: r.name,
			})
			return nil
		})
		iter.Close()
		if err != nil && err != storer.ErrStop {
			log.Printf("Backfill %s: %v", r.name, err)
		}
	}
	return out
}
