// Package publish commits the generated site into a git repository rooted at
// the output directory. It never pushes.
package publish

import (
	"errors"
	"log/slog"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"

	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
	"git.home.luguber.info/inful/sitesmith/internal/logfields"
)

// Options describe the commit to create.
type Options struct {
	AuthorName  string
	AuthorEmail string
	Message     string
	When        time.Time // zero means now
	// Exclude lists gitignore patterns kept out of every commit.
	Exclude []string
}

// Result reports what Commit did.
type Result struct {
	Hash      string
	Committed bool // false when the tree matched HEAD
	Created   bool // repository was initialized by this call
}

// Commit opens (or initializes) the repository at dir, stages every change
// including deletions and commits it. An unchanged tree is not committed.
func Commit(dir string, opts Options) (Result, error) {
	var res Result
	repo, err := git.PlainOpen(dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(dir, false)
		res.Created = true
	}
	if err != nil {
		return res, serrors.PublishFailed("open repository", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return res, serrors.PublishFailed("worktree", err)
	}
	for _, p := range opts.Exclude {
		wt.Excludes = append(wt.Excludes, gitignore.ParsePattern(p, nil))
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return res, serrors.PublishFailed("stage changes", err)
	}
	status, err := wt.Status()
	if err != nil {
		return res, serrors.PublishFailed("status", err)
	}
	if status.IsClean() {
		if head, herr := repo.Head(); herr == nil {
			res.Hash = head.Hash().String()
		}
		slog.Info("Output unchanged, nothing to publish", logfields.Path(dir))
		return res, nil
	}

	when := opts.When
	if when.IsZero() {
		when = time.Now()
	}
	hash, err := wt.Commit(opts.Message, &git.CommitOptions{
		Author: &object.Signature{Name: opts.AuthorName, Email: opts.AuthorEmail, When: when},
	})
	if err != nil {
		return res, serrors.PublishFailed("commit", err)
	}
	res.Hash = hash.String()
	res.Committed = true
	slog.Info("Published site commit", logfields.Path(dir), slog.String("commit", res.Hash),
		slog.Int("changes", len(status)))
	return res, nil
}
