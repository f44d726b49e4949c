package build

import "slices"

// Tag assigned when the user requested none.
const defaultTag = "latest"

// Describes the image to create once the sequence has fully succeeded.
type CommitRequest struct {
	Repository string   // Name of the new image.
	Tags       []string // Ordered, duplicate-free; never empty.
	User       string   // Optional user override for the image config.
	Workdir    string   // Optional working directory override for the image config.
}

// Builds a commit request.
//
// Zero tags default to "latest". Duplicates are dropped, keeping the first
// occurrence, so each tag is assigned exactly once.
func NewCommitRequest(repository string, tags []string) CommitRequest {
	deduped := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !slices.Contains(deduped, tag) {
			deduped = append(deduped, tag)
		}
	}

	if len(deduped) == 0 {
		deduped = append(deduped, defaultTag)
	}

	return CommitRequest{
		Repository: repository,
		Tags:       deduped,
	}
}
