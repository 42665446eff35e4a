package types

// ExtractedURLs holds classified profile links found in resume text.
// Each named slot holds at most one URL; OtherLinks is sorted and deduplicated.
type ExtractedURLs struct {
	LinkedinURL  string   `json:"linkedinUrl,omitempty"`
	GithubURL    string   `json:"githubUrl,omitempty"`
	TwitterURL   string   `json:"twitterUrl,omitempty"`
	PortfolioURL string   `json:"portfolioUrl,omitempty"`
	OtherLinks   []string `json:"otherLinks"`
}
