package ocr

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"marksight/internal/config"
	"marksight/internal/domain"
	"marksight/internal/port"
)

// Extractor implements port.MarksheetExtractor by running a local tesseract
// binary over the image and applying line-pattern heuristics to the text.
// It needs no API key, which makes it a useful last resort in a fallback
// chain when every hosted provider is rate limited or down.
type Extractor struct {
	binary string
	lang   string
	runner Runner
}

// NewExtractor creates a tesseract-backed marksheet extractor. The provider
// config's DefaultModel selects the tesseract language pack (default "eng").
func NewExtractor(cfg *config.ExtractorProviderConfig) *Extractor {
	lang := cfg.DefaultModel
	if lang == "" {
		lang = "eng"
	}
	return &Extractor{
		binary: "tesseract",
		lang:   lang,
		runner: execRunner{},
	}
}

// NewExtractorWithRunner creates an extractor with a custom command runner (for testing).
func NewExtractorWithRunner(cfg *config.ExtractorProviderConfig, runner Runner) *Extractor {
	e := NewExtractor(cfg)
	e.runner = runner
	return e
}

func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	tmp, err := os.CreateTemp("", "marksight-ocr-*"+extensionFor(input.ContentType))
	if err != nil {
		return nil, fmt.Errorf("creating temp image: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(input.ImageBytes); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("writing temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing temp image: %w", err)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.binary, tmp.Name(), "stdout", "-l", e.lang)
	if err != nil {
		return nil, fmt.Errorf("tesseract: %w (stderr: %s)", err, truncate(string(errb), 500))
	}

	text := string(out)
	return &port.ExtractOutput{
		Record:      recordFromText(text),
		RawResponse: text,
		ModelUsed:   "tesseract/" + e.lang,
		PromptUsed:  "",
	}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tiff"
	default:
		return ".img"
	}
}

var (
	rollRe    = regexp.MustCompile(`(?i)(?:rrn|roll\s*(?:no|number)?|reg(?:istration)?\s*(?:no|number)?)\s*[:.\-]?\s*([A-Za-z0-9/\-]+)`)
	nameRe    = regexp.MustCompile(`(?i)(?:student\s*)?name\s*(?:of\s*(?:the\s*)?(?:student|candidate))?\s*[:.\-]?\s*([A-Za-z][A-Za-z .]+)`)
	classRe   = regexp.MustCompile(`(?i)(?:class|standard|grade\s*level)\s*[:.\-]?\s*([A-Za-z0-9 \-]+)`)
	yearRe    = regexp.MustCompile(`(?i)(?:academic\s*year|session)\s*[:.\-]?\s*(\d{4}\s*[-/]\s*\d{2,4})`)
	percentRe = regexp.MustCompile(`(?i)percentage\s*[:.\-]?\s*(\d+(?:\.\d+)?)\s*%?`)
	gradeRe   = regexp.MustCompile(`(?i)\bgrade\s*[:.\-]?\s*([A-Za-z][+\-]?|[A-Za-z]{1,2}\d?)\b`)
	totalRe   = regexp.MustCompile(`(?i)(?:grand\s*)?total\s*(?:marks)?\s*[:.\-]?\s*(\d+(?:\.\d+)?)\s*(?:/\s*(\d+(?:\.\d+)?))?`)
	marksRe   = regexp.MustCompile(`^([A-Za-z][A-Za-z .&()]{2,40}?)\s+(\d+(?:\.\d+)?)\s*(?:/|\s)\s*(\d+(?:\.\d+)?)\s*$`)
)

// recordFromText applies line heuristics to OCR output. Fields that cannot
// be located keep the "Not Available" sentinel; the raw text always survives
// in the record so a human can reconcile misses.
func recordFromText(text string) domain.MarksheetRecord {
	rec := domain.NewMarksheetRecord()
	rec.RawResponse = text

	if m := rollRe.FindStringSubmatch(text); m != nil {
		rec.RollNumber = strings.TrimSpace(m[1])
	}
	if m := nameRe.FindStringSubmatch(text); m != nil {
		rec.StudentName = strings.TrimSpace(m[1])
	}
	if m := classRe.FindStringSubmatch(text); m != nil {
		rec.ClassLabel = strings.TrimSpace(m[1])
	}
	if m := yearRe.FindStringSubmatch(text); m != nil {
		rec.AcademicYear = strings.TrimSpace(m[1])
	}
	if m := percentRe.FindStringSubmatch(text); m != nil {
		rec.Percentage = m[1]
	}
	if m := gradeRe.FindStringSubmatch(text); m != nil {
		rec.Grade = strings.TrimSpace(m[1])
	}
	if m := totalRe.FindStringSubmatch(text); m != nil {
		rec.TotalObtained = m[1]
		if m[2] != "" {
			rec.TotalMax = m[2]
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		m := marksRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		subject := strings.TrimSpace(m[1])
		if strings.EqualFold(subject, "total") || strings.EqualFold(subject, "grand total") {
			continue
		}
		rec.Sections = append(rec.Sections, domain.SectionMark{
			Subject:       subject,
			MarksObtained: m[2],
			MaxMarks:      m[3],
		})
	}

	return rec
}
