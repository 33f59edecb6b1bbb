package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Ed1123/bank-statements/pkg/config"
	"github.com/Ed1123/bank-statements/pkg/export"
	"github.com/Ed1123/bank-statements/pkg/extract"
	"github.com/Ed1123/bank-statements/pkg/parser"
)

// Processor converts statement PDFs into CSV files.
type Processor struct {
	config *config.Config
	logger *log.Logger
	parser *parser.Parser
	filter export.FilterFunc
}

// NewProcessor wires a processor; filter may be nil to export every
// operation.
func NewProcessor(cfg *config.Config, logger *log.Logger, filter export.FilterFunc) *Processor {
	return &Processor{
		config: cfg,
		logger: logger,
		parser: parser.New(logger, cfg.ParserOptions()...),
		filter: filter,
	}
}

// ProcessDirectory converts every PDF in dir. One bad statement does
// not stop the batch; failures are logged and the rest continue.
func (p *Processor) ProcessDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("error reading directory: %w", err)
	}

	for _, entry := range entries {
		if err := p.processEntry(dir, entry); err != nil {
			p.logger.Error("failed to process entry", "file", entry.Name(), "error", err)
		}
	}

	return nil
}

func (p *Processor) processEntry(dir string, entry os.DirEntry) error {
	if entry.IsDir() {
		return nil
	}
	if !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
		return nil
	}

	inputPath := filepath.Join(dir, entry.Name())
	outPath := p.outputPath(inputPath, entry.Name())

	p.logger.Info("processing statement", "path", inputPath)
	if err := p.Convert(inputPath, outPath, p.config.Password); err != nil {
		return err
	}
	p.logger.Info("processed statement", "input", inputPath, "output", outPath)
	return nil
}

// ProcessFile converts one statement PDF using the configured password.
// Pass an empty outPath to derive it from the input name.
func (p *Processor) ProcessFile(inputPath, outPath string) error {
	if outPath == "" {
		outPath = p.outputPath(inputPath, filepath.Base(inputPath))
	}
	return p.Convert(inputPath, outPath, p.config.Password)
}

// Convert runs the full pipeline for one document: extract page text,
// parse the statement, write the CSV.
func (p *Processor) Convert(inputPath, outPath, password string) error {
	doc, err := extract.Read(inputPath, password)
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}

	st, err := p.parser.Parse(doc.Pages, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("parsing statement: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	if err := export.Write(out, export.Rows(st, p.filter)); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func (p *Processor) outputPath(inputPath, fileName string) string {
	ext := filepath.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, ext)
	if p.config.OutputPath != "" {
		return filepath.Join(p.config.OutputPath, baseName+".csv")
	}
	return strings.TrimSuffix(inputPath, ext) + ".csv"
}
