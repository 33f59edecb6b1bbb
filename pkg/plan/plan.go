package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Plan is a YAML batch file listing statements to convert.
type Plan struct {
	Output     string      `yaml:"output"`
	Statements []Statement `yaml:"statements"`
}

// Statement is one document of the batch. Passwords are referenced by
// environment variable name so plan files stay safe to commit.
type Statement struct {
	File        string `yaml:"file"`
	PasswordEnv string `yaml:"password_env"`
	Output      string `yaml:"output"`
}

// Password resolves the statement password from its environment
// variable, empty when none is configured.
func (s Statement) Password() string {
	if s.PasswordEnv == "" {
		return ""
	}
	return os.Getenv(s.PasswordEnv)
}

func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(p.Statements) == 0 {
		return nil, fmt.Errorf("plan has no statements")
	}
	return &p, nil
}

func (p *Plan) Print() {
	if p.Output != "" {
		fmt.Printf("output directory: %s\n", p.Output)
	}
	for i, st := range p.Statements {
		fmt.Printf("[%d] file=%s output=%s password_env=%s\n", i+1, st.File, st.Output, st.PasswordEnv)
	}
}

// ResolveOutput picks the CSV path for a statement: its own output if
// set, a file named after the input inside the plan's output directory
// if one is configured, otherwise empty so the caller derives it from
// the input path.
func (p *Plan) ResolveOutput(s Statement) string {
	if s.Output != "" {
		return s.Output
	}
	if p.Output == "" {
		return ""
	}
	base := filepath.Base(s.File)
	return filepath.Join(p.Output, strings.TrimSuffix(base, filepath.Ext(base))+".csv")
}
