// Package category defines topic categories and keyword-based labeling of
// paper records.
package category

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category is one topic label with its matching keyword set.
type Category struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
}

// Builtins are the immutable default categories. User definitions may add
// keywords to a builtin (matched by ID) or define new categories, but the
// builtin keyword sets themselves are never removed.
var Builtins = []Category{
	{ID: "llm", Name: "Language Models", Keywords: []string{"language model", "llm", "transformer", "pretraining", "gpt"}},
	{ID: "agents", Name: "Agents", Keywords: []string{"agent", "multi-agent", "tool use", "planning"}},
	{ID: "reasoning", Name: "Reasoning", Keywords: []string{"reasoning", "chain of thought", "deduction", "math word problem"}},
	{ID: "retrieval", Name: "Retrieval", Keywords: []string{"retrieval", "rag", "dense passage", "vector search"}},
	{ID: "alignment", Name: "Alignment & Safety", Keywords: []string{"alignment", "rlhf", "safety", "human feedback", "red team"}},
	{ID: "training", Name: "Training & Efficiency", Keywords: []string{"fine-tuning", "lora", "distillation", "quantization", "training efficiency"}},
	{ID: "multimodal", Name: "Multimodal", Keywords: []string{"multimodal", "vision-language", "image captioning", "video understanding"}},
	{ID: "evaluation", Name: "Evaluation", Keywords: []string{"benchmark", "evaluation", "leaderboard", "metric"}},
}

// definitionsFile is the on-disk shape of user category definitions.
type definitionsFile struct {
	Categories []Category `yaml:"categories"`
}

// Load merges the builtin categories with user definitions from a YAML file.
// User entries whose ID matches a builtin contribute extra keywords; new IDs
// are appended after the builtins in file order. A missing file yields just
// the builtins.
func Load(path string) ([]Category, error) {
	merged := make([]Category, len(Builtins))
	for i, c := range Builtins {
		merged[i] = c
		merged[i].Keywords = append([]string(nil), c.Keywords...)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return merged, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var df definitionsFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	index := make(map[string]int, len(merged))
	for i, c := range merged {
		index[c.ID] = i
	}

	for _, uc := range df.Categories {
		if uc.ID == "" {
			return nil, fmt.Errorf("%s: category with empty id", path)
		}
		if i, ok := index[uc.ID]; ok {
			merged[i].Keywords = appendNewKeywords(merged[i].Keywords, uc.Keywords)
			if uc.Description != "" {
				merged[i].Description = uc.Description
			}
			continue
		}
		index[uc.ID] = len(merged)
		merged = append(merged, uc)
	}

	return merged, nil
}

// appendNewKeywords appends keywords not already present (exact match).
func appendNewKeywords(existing, extra []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, k := range existing {
		seen[k] = true
	}
	for _, k := range extra {
		if k != "" && !seen[k] {
			seen[k] = true
			existing = append(existing, k)
		}
	}
	return existing
}
