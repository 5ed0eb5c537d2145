package github

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"

	"github.com/giralt/sitecms/internal/apperr"
)

// DefaultFilePath is the well-known location of the gallery document in the
// remote repository.
const DefaultFilePath = "data/gallery-data.json"

// Serializer provides the exact bytes to push remotely.
type Serializer interface {
	Serialize() ([]byte, error)
}

// CommitterConfig identifies the remote repository.
type CommitterConfig struct {
	Repo     string // owner/name
	Branch   string
	Token    string
	FilePath string
}

// Committer pushes the serialized gallery document to the remote repository
// so local mutations survive beyond process lifetime. It is deliberately
// best-effort: Commit never returns an error, only success or failure, and
// local state is already durable (or cached) before it runs.
type Committer struct {
	store  Serializer
	client *Client
	cfg    CommitterConfig
}

// NewCommitter creates a committer for the configured repository. An empty
// repo or token leaves the committer in a not-configured state where every
// Commit is a no-op returning false.
func NewCommitter(store Serializer, cfg CommitterConfig) *Committer {
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	if cfg.FilePath == "" {
		cfg.FilePath = DefaultFilePath
	}
	return &Committer{
		store:  store,
		client: NewClient(cfg.Token),
		cfg:    cfg,
	}
}

// NewCommitterWithClient is used by tests to inject a client pointed at a
// fake API.
func NewCommitterWithClient(store Serializer, cfg CommitterConfig, client *Client) *Committer {
	c := NewCommitter(store, cfg)
	c.client = client
	return c
}

// Configured reports whether the remote repository is set up.
func (c *Committer) Configured() bool {
	return c.cfg.Repo != "" && c.cfg.Token != ""
}

// Commit serializes the current document and performs a create-or-update
// write against the Contents API. On a version conflict it retries exactly
// once with a freshly fetched sha. It returns true only on a successful
// write; all failures, including "not configured", collapse to false.
func (c *Committer) Commit(ctx context.Context, message string) bool {
	if !c.Configured() {
		// Expected state on local setups without a remote repo.
		slog.Debug("committer: not configured, skipping commit")
		return false
	}

	data, err := c.store.Serialize()
	if err != nil {
		slog.Error("committer: serialize failed", slog.String("error", err.Error()))
		return false
	}
	content := base64.StdEncoding.EncodeToString(data)

	sha, err := c.fetchSHA(ctx)
	if err != nil {
		return false
	}

	err = c.client.PutFile(ctx, c.cfg.Repo, c.cfg.Branch, c.cfg.FilePath, message, content, sha)
	if errors.Is(err, apperr.ErrConflict) {
		// Another commit landed between our GET and PUT. Refresh the sha
		// and retry once; anything beyond that is a real race worth
		// surfacing as failure.
		slog.Warn("committer: version conflict, retrying with fresh sha",
			slog.String("repo", c.cfg.Repo))
		sha, err = c.fetchSHA(ctx)
		if err != nil {
			return false
		}
		err = c.client.PutFile(ctx, c.cfg.Repo, c.cfg.Branch, c.cfg.FilePath, message, content, sha)
	}
	if err != nil {
		slog.Error("committer: commit failed",
			slog.String("repo", c.cfg.Repo),
			slog.String("message", message),
			slog.String("error", err.Error()))
		return false
	}

	slog.Info("committer: committed",
		slog.String("repo", c.cfg.Repo),
		slog.String("branch", c.cfg.Branch),
		slog.String("message", message))
	return true
}

// fetchSHA returns the current remote sha, or "" when the file does not
// exist yet (the PUT will then create it).
func (c *Committer) fetchSHA(ctx context.Context) (string, error) {
	sha, err := c.client.FileSHA(ctx, c.cfg.Repo, c.cfg.Branch, c.cfg.FilePath)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return "", nil
	case err != nil:
		slog.Error("committer: fetch sha failed", slog.String("error", err.Error()))
		return "", err
	}
	return sha, nil
}
