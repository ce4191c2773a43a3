package report

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openshelf/booklens/internal/answers"
)

// Document is the structured answers artifact: the run header plus the
// twelve answers.
type Document struct {
	Run     Header       `json:"run" yaml:"run"`
	Answers *answers.Set `json:"answers" yaml:"answers"`
}

// WriteYAML saves the answers document as YAML.
func WriteYAML(path string, header Header, set *answers.Set) error {
	doc := Document{Run: header, Answers: set}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteJSON saves the answers document as indented JSON.
func WriteJSON(path string, header Header, set *answers.Set) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(Document{Run: header, Answers: set}); err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	return nil
}
