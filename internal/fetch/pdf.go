package fetch

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"blusa/internal/utils"
)

// User-facing messages for the PDF failure classes.
const (
	msgPDFNotFound = "Não encontrei o arquivo no caminho informado. " +
		"Poderia verificar se o caminho está correto?"
	msgPDFUnreadable = "Não consegui ler este PDF. " +
		"O arquivo pode estar corrompido ou em um formato inválido."
)

// PDFFetcher extracts the text of a local PDF file.
type PDFFetcher struct {
	logger *utils.Logger
}

func NewPDFFetcher(logger *utils.Logger) *PDFFetcher {
	return &PDFFetcher{logger: logger}
}

func (f *PDFFetcher) Fetch(ctx context.Context, path string) Result {
	f.logger.Infof("reading pdf: %s", path)
	if _, err := os.Stat(path); err != nil {
		f.logger.Warnf("pdf not found at %s: %v", path, err)
		return Fail(msgPDFNotFound)
	}
	if err := ctx.Err(); err != nil {
		f.logger.Warnf("pdf read canceled for %s: %v", path, err)
		return Fail(msgPDFUnreadable)
	}

	text, err := extractPDFText(path)
	if err != nil {
		f.logger.Errorf("pdf extraction failed for %s: %v", path, err)
		return Fail(msgPDFUnreadable)
	}
	text = flatten(text)
	if text == "" {
		f.logger.Warnf("pdf %s contained no extractable text", path)
		return Fail(msgPDFUnreadable)
	}
	f.logger.Infof("pdf %s extracted (%d chars)", path, len(text))
	return Ok(text)
}

// extractPDFText concatenates the plain text of every page. The underlying
// parser panics on some malformed files, so the panic is converted to an
// error here.
func extractPDFText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var buf bytes.Buffer
	content, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	if _, err := buf.ReadFrom(content); err != nil {
		return "", err
	}
	return buf.String(), nil
}
