package githubclt

import (
	"fmt"

	"github.com/google/go-github/v60/github"
)

// Repository identifies a GitHub repository.
type Repository struct {
	Owner         string   `json:"owner"`
	OwnerType     string   `json:"owner_type"`
	Name          string   `json:"name"`
	DefaultBranch string   `json:"default_branch"`
	Archived      bool     `json:"archived"`
	Fork          bool     `json:"fork"`
	Private       bool     `json:"private"`
	Topics        []string `json:"topics"`
}

func (r *Repository) String() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

func fromGithubRepository(repo *github.Repository) *Repository {
	return &Repository{
		Owner:         repo.GetOwner().GetLogin(),
		OwnerType:     repo.GetOwner().GetType(),
		Name:          repo.GetName(),
		DefaultBranch: repo.GetDefaultBranch(),
		Archived:      repo.GetArchived(),
		Fork:          repo.GetFork(),
		Private:       repo.GetPrivate(),
		Topics:        repo.Topics,
	}
}

// Tag is a git tag and the SHA of the commit it points to.
type Tag struct {
	Name      string
	CommitSHA string
}

// Release is a published GitHub release.
type Release struct {
	TagName string
	Name    string
	Body    string
}

// NewRelease describes a release that is created.
type NewRelease struct {
	TagName    string
	Name       string
	Body       string
	Draft      bool
	Prerelease bool
}
