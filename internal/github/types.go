package github

// ItemType is the kind of an entry in a repository contents listing.
type ItemType string

// Item types reported by the contents API.
const (
	ItemFile      ItemType = "file"
	ItemDirectory ItemType = "dir"
	ItemSymlink   ItemType = "symlink"
	ItemSubmodule ItemType = "submodule"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemFile, ItemDirectory, ItemSymlink, ItemSubmodule:
		return true
	}
	return false
}

// RepositoryItem is a single entry in the root of a repository.
type RepositoryItem struct {
	Name string   `json:"name" yaml:"name"`
	Type ItemType `json:"type" yaml:"type"`
	Size int64    `json:"size" yaml:"size"`
	URL  string   `json:"url" yaml:"url"`
	SHA  string   `json:"sha" yaml:"sha"`
}

// RepositorySummary describes one repository owned by the authenticated user.
type RepositorySummary struct {
	Name        string  `json:"name" yaml:"name"`
	Description *string `json:"description" yaml:"description"`
	URL         string  `json:"url" yaml:"url"`
	Private     bool    `json:"private" yaml:"private"`
	SizeBytes   int64   `json:"size_bytes" yaml:"size_bytes"`
	Language    *string `json:"language" yaml:"language"`
}

// SizeKB returns the repository size in kilobytes.
func (r RepositorySummary) SizeKB() float64 {
	return float64(r.SizeBytes) / 1024
}

// Committer identifies the author of a file write.
type Committer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FileWriteRequest is the body of a contents PUT. SHA is omitted when creating a file.
type FileWriteRequest struct {
	Message   string    `json:"message"`
	Content   string    `json:"content"`
	Committer Committer `json:"committer"`
	SHA       string    `json:"sha,omitempty"`
}

// FileDeleteRequest is the body of a contents DELETE.
type FileDeleteRequest struct {
	Message   string    `json:"message"`
	Committer Committer `json:"committer"`
	SHA       string    `json:"sha"`
}

// RepositoryCreateRequest is the body of a repository creation.
type RepositoryCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Homepage    string `json:"homepage"`
	Private     bool   `json:"private"`
	HasIssues   bool   `json:"has_issues"`
	HasProjects bool   `json:"has_projects"`
	HasWiki     bool   `json:"has_wiki"`
	AutoInit    bool   `json:"auto_init"`
}

// Wire shapes of API responses. Only the fields the client reads are declared.

type contentEntry struct {
	Name    string   `json:"name"`
	Type    ItemType `json:"type"`
	Size    int64    `json:"size"`
	HTMLURL string   `json:"html_url"`
	SHA     string   `json:"sha"`
}

type repositoryEntry struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	HTMLURL     string  `json:"html_url"`
	Private     bool    `json:"private"`
	Size        int64   `json:"size"`
	Language    *string `json:"language"`
}

type fileEntry struct {
	Type     ItemType `json:"type"`
	Encoding string   `json:"encoding"`
	Content  *string  `json:"content"`
}

type fileCommitResponse struct {
	Content *struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

type errorBody struct {
	Message string `json:"message"`
}
