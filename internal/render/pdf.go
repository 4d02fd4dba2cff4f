package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"reddit-psych-pipeline/internal/model"
)

// maxLineBytes bounds a single dataset line; bodies are long but bounded.
const maxLineBytes = 4 * 1024 * 1024

// RenderPDF lays the compiled dataset out as a printable A4 document, one
// numbered post per block: title heading, body paragraphs, subreddit meta
// line. The dataset is streamed line by line; no record count is assumed.
// Returns the number of posts rendered.
func RenderPDF(datasetPath, outputPath string) (int, error) {
	f, err := os.Open(datasetPath)
	if err != nil {
		return 0, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 25, 25)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var post model.Post
		if err := json.Unmarshal([]byte(line), &post); err != nil {
			return count, fmt.Errorf("dataset line %d: %w", count+1, err)
		}
		count++
		writePost(pdf, tr, count, post)
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("read dataset: %w", err)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return count, fmt.Errorf("write pdf: %w", err)
	}
	return count, nil
}

func writePost(pdf *gofpdf.Fpdf, tr func(string) string, n int, post model.Post) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 6, tr(fmt.Sprintf("Post %d: %s", n, post.Title)), "", "L", false)
	pdf.Ln(2)

	if post.Body != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(post.Body), "", "L", false)
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.MultiCell(0, 4, tr("Subreddit: r/"+post.Subreddit), "", "L", false)
	pdf.Ln(5)
}
