package fetch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultQueries is the built-in harvest list, ordered by priority. The
// order matters: the first query to return a paper ID wins the cross-query
// dedup, and earlier queries finish even if a later one fails.
var DefaultQueries = []TopicQuery{
	{Query: `cat:cs.AI AND abs:"large language model"`, Description: "LLM core", Category: "llm"},
	{Query: `cat:cs.CL AND (abs:"language model" OR abs:"transformer")`, Description: "NLP and language modeling", Category: "llm"},
	{Query: `abs:"autonomous agent" OR abs:"multi-agent"`, Description: "Agents", Category: "agents"},
	{Query: `abs:"chain of thought" OR abs:"reasoning"`, Description: "Reasoning", Category: "reasoning"},
	{Query: `abs:"retrieval augmented" OR abs:"RAG"`, Description: "Retrieval augmentation", Category: "retrieval"},
	{Query: `abs:"reinforcement learning from human feedback" OR abs:"RLHF"`, Description: "Alignment and RLHF", Category: "alignment"},
	{Query: `cat:cs.LG AND abs:"fine-tuning"`, Description: "Training and fine-tuning", Category: "training"},
	{Query: `abs:"multimodal" AND (cat:cs.CV OR cat:cs.CL)`, Description: "Multimodal models", Category: "multimodal"},
}

// queryFile is the on-disk shape of a user query list.
type queryFile struct {
	Queries []TopicQuery `yaml:"queries"`
}

// LoadQueries reads an ordered query list from a YAML file. A missing file
// returns the built-in default list.
func LoadQueries(path string) ([]TopicQuery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultQueries, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var qf queryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(qf.Queries) == 0 {
		return nil, fmt.Errorf("%s defines no queries", path)
	}
	for i, q := range qf.Queries {
		if q.Query == "" {
			return nil, fmt.Errorf("%s: query entry %d has an empty query", path, i+1)
		}
	}
	return qf.Queries, nil
}
