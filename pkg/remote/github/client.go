package github

import (
	"context"
	"net/http"
	"os"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

// GitHubClient defines the interface for GitHub API operations we need
type GitHubClient interface {
	GetRepository(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
	GetCommitSHA(ctx context.Context, owner, repo, ref string) (string, *github.Response, error)
}

// githubClientWrapper wraps the GitHub client to implement our interface
type githubClientWrapper struct {
	client *github.Client
}

func (w *githubClientWrapper) GetRepository(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error) {
	return w.client.Repositories.Get(ctx, owner, repo)
}

func (w *githubClientWrapper) GetCommitSHA(ctx context.Context, owner, repo, ref string) (string, *github.Response, error) {
	return w.client.Repositories.GetCommitSHA1(ctx, owner, repo, ref, "")
}

// httpClient builds the client shared by API calls and archive downloads.
// GITHUB_TOKEN is optional; without it public repositories still work
// within anonymous rate limits.
func httpClient(ctx context.Context) *http.Client {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return http.DefaultClient
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return oauth2.NewClient(ctx, ts)
}
