package repository

// PlaceholderGraph is shown in place of the graph when it cannot be read.
// It contains no commit marker, so it parses to zero headers.
const PlaceholderGraph = "(commit graph unavailable)"

// Snapshot is one read of repository state.
type Snapshot struct {
	Commits []Commit
	Graph   string
}

// Load reads commits and graph text from repo. Read failures never propagate:
// a failed commit listing yields no commits and a failed graph read yields
// PlaceholderGraph. Commits are listed first so caching wrappers can validate
// their graph against them.
func Load(repo CommitRepository) Snapshot {
	commits, err := repo.ListCommits()
	if err != nil {
		logDebug("[repository] listing commits failed: %v", err)
		commits = nil
	}

	text, err := repo.GraphText()
	if err != nil {
		logDebug("[repository] reading graph failed: %v", err)
		text = PlaceholderGraph
	}

	return Snapshot{Commits: commits, Graph: text}
}
