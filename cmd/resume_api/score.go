package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-intake/internal/requirements"
	"github.com/jonathan/resume-intake/internal/types"
)

var (
	scoreInputFile   string
	scoreJobFile     string
	scoreCandidateID string
	scoreOutputFile  string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a local resume against a job requirements file",
	Long: `Parse a local resume and score it against a job posting read from a JSON file.
The job file holds the posting's requirements, for example
{"id": "job-1", "title": "Backend Engineer", "required_skills": ["Go"], "min_experience_years": 3}.
Nothing is stored.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreInputFile, "in", "i", "", "Path to the resume file (required)")
	scoreCmd.Flags().StringVarP(&scoreJobFile, "job", "j", "", "Path to the job requirements JSON file (required)")
	scoreCmd.Flags().StringVar(&scoreCandidateID, "candidate-id", "local", "Candidate ID recorded on the score")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Path to the output JSON file (default stdout)")
	_ = scoreCmd.MarkFlagRequired("in")
	_ = scoreCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	posting, err := loadJobPosting(scoreJobFile)
	if err != nil {
		return err
	}
	content, err := readFileBase64(scoreInputFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res := &resources{}
	defer res.Close()

	parser, err := newParser(ctx, appConfig, appLogger, res)
	if err != nil {
		return err
	}
	resolver := requirements.NewResolver(requirements.NewMemoryStore(posting), appLogger)
	p, err := newPipeline(appConfig, appLogger, parser, resolver, nil)
	if err != nil {
		return err
	}

	result, err := p.Process(ctx, types.ScoreResumeRequest{
		CandidateID: scoreCandidateID,
		JobID:       posting.ID,
		FileContent: content,
		FileName:    filepath.Base(scoreInputFile),
	})
	if err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}

	return writeJSON(cmd.OutOrStdout(), scoreOutputFile, result)
}

// loadJobPosting reads a job file. The id and title fields identify the
// posting; the whole document is its requirements content. A missing id
// falls back to the file name.
func loadJobPosting(path string) (types.JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.JobPosting{}, fmt.Errorf("failed to read job file: %w", err)
	}

	var header struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return types.JobPosting{}, fmt.Errorf("job file %s is not a JSON object: %w", path, err)
	}

	id := strings.TrimSpace(header.ID)
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return types.JobPosting{ID: id, Title: header.Title, Content: data}, nil
}
