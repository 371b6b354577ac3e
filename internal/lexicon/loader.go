package lexicon

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

//go:embed words/basic.txt
var basicWords string

// Fallback returns a small built-in Lexicon so lookups keep working before
// (or without) a full dictionary.
func Fallback() *Lexicon {
	return Build(ParseLines(basicWords), DefaultMinLen, DefaultMaxLen)
}

// ParseLines splits newline-delimited text into entries. Lines are trimmed;
// blank lines and lines starting with '#' are dropped.
func ParseLines(text string) []string {
	var words []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words
}

// Read builds a Lexicon from a newline-delimited word list.
func Read(r io.Reader, minLen, maxLen int) (*Lexicon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lexicon: cannot read word list: %w", err)
	}
	text, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Build(ParseLines(text), minLen, maxLen), nil
}

// ReadFile builds a Lexicon from the word list at path.
func ReadFile(path string, minLen, maxLen int) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: cannot open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, minLen, maxLen)
}

// Decode returns data as UTF-8 text. Input that is not valid UTF-8 is
// assumed to be Windows-1251, the usual encoding of Russian word lists.
func Decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("lexicon: cannot decode word list: %w", err)
	}
	return string(out), nil
}
