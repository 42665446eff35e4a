package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-intake/internal/types"
)

var (
	parseInputFile  string
	parseOutputFile string
	parseMIMEType   string
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a local resume file into structured JSON",
	Long:  "Extract the text of a PDF, DOCX, HTML or plain text resume and parse it into structured candidate data.",
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to the resume file (required)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to the output JSON file (default stdout)")
	parseCmd.Flags().StringVar(&parseMIMEType, "mime-type", "", "MIME type of the resume (inferred from the extension when empty)")
	_ = parseCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	content, err := readFileBase64(parseInputFile)
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
	p, err := newPipeline(appConfig, appLogger, parser, nil, nil)
	if err != nil {
		return err
	}

	result, err := p.Parse(ctx, types.ParseResumeRequest{
		FileContent: content,
		FileName:    filepath.Base(parseInputFile),
		MIMEType:    parseMIMEType,
	})
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	return writeJSON(cmd.OutOrStdout(), parseOutputFile, result)
}

// readFileBase64 reads path and returns its content base64 encoded, the form
// the pipeline accepts from API clients.
func readFileBase64(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty.
func writeJSON(stdout io.Writer, path string, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	out = append(out, '\n')

	if path == "" {
		_, err = stdout.Write(out)
		return err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
