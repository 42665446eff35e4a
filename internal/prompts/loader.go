// Package prompts provides externalized LLM prompt templates.
// Prompts are stored as JSON objects of key -> template and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

var (
	loadOnce sync.Once
	loaded   map[string]map[string]string
	loadErr  error
)

// Get retrieves a prompt by filename and key, e.g. Get("parsing.json", "extract-resume").
func Get(filename, key string) (string, error) {
	files, err := all()
	if err != nil {
		return "", err
	}

	prompts, ok := files[filename]
	if !ok {
		return "", fmt.Errorf("failed to read prompt file %s: not embedded", filename)
	}
	prompt, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet retrieves a prompt by filename and key, panicking if not found.
// Use this for prompts that are required at initialization time.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces {{.Key}} placeholders in template with values from data.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Render loads a prompt and applies Format to it.
func Render(filename, key string, data map[string]string) (string, error) {
	template, err := Get(filename, key)
	if err != nil {
		return "", err
	}
	return Format(template, data), nil
}

// Keys returns the prompt keys in a file, sorted.
func Keys(filename string) ([]string, error) {
	files, err := all()
	if err != nil {
		return nil, err
	}
	prompts, ok := files[filename]
	if !ok {
		return nil, fmt.Errorf("failed to read prompt file %s: not embedded", filename)
	}

	keys := make([]string, 0, len(prompts))
	for key := range prompts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// all parses every embedded prompt file once.
func all() (map[string]map[string]string, error) {
	loadOnce.Do(func() {
		names, err := fs.Glob(promptFiles, "*.json")
		if err != nil {
			loadErr = err
			return
		}

		files := make(map[string]map[string]string, len(names))
		for _, name := range names {
			data, err := promptFiles.ReadFile(name)
			if err != nil {
				loadErr = fmt.Errorf("failed to read prompt file %s: %w", name, err)
				return
			}
			var prompts map[string]string
			if err := json.Unmarshal(data, &prompts); err != nil {
				loadErr = fmt.Errorf("failed to parse prompt file %s: %w", name, err)
				return
			}
			files[name] = prompts
		}
		loaded = files
	})
	return loaded, loadErr
}
