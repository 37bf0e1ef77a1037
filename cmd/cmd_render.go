package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"asbestos-screen/internal/api/rest"
	"asbestos-screen/internal/domain/entity"
	"asbestos-screen/internal/infrastructure/report"
)

var renderFlags struct {
	input    string
	output   string
	images   []string
	fontPath string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a PDF report from a JSON assessment",
	Long: `Reads {"assessment": {...}, "images": [{"name", "data"}], "facilities": [...]}
and writes the PDF. Image data is base64; extra photos can be passed with --image.`,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderFlags.input, "input", "i", "", "input JSON file (required)")
	f.StringVarP(&renderFlags.output, "output", "o", "", "output PDF path or directory (default: generated file name)")
	f.StringArrayVar(&renderFlags.images, "image", nil, "photo file to append to the report (repeatable)")
	f.StringVar(&renderFlags.fontPath, "font", os.Getenv("REPORT_FONT_PATH"), "UTF-8 TTF font")

	_ = renderCmd.MarkFlagRequired("input")
}

func runRender(cmd *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(renderFlags.input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var req rest.ReportRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}
	for _, path := range renderFlags.images {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		req.Images = append(req.Images, entity.AnalyzedImage{Name: filepath.Base(path), Data: data})
	}

	renderer := report.NewRenderer(report.Options{FontPath: renderFlags.fontPath})
	rep, err := renderer.Render(req.Assessment, req.Images, req.Facilities)
	if err != nil {
		return err
	}

	out := renderFlags.output
	if out == "" {
		out = rep.FileName
	} else if info, err := os.Stat(out); err == nil && info.IsDir() {
		out = filepath.Join(out, rep.FileName)
	}
	if err := os.WriteFile(out, rep.Content, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if len(rep.SkippedImages) > 0 {
		log.WithField("positions", rep.SkippedImages).Warn("some photos could not be embedded")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d page(s))\n", out, rep.PageCount)
	return nil
}
