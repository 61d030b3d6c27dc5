// Package wordlist reads candidate words from plain text lists and wordserve
// binary chunk dictionaries and hands them out one at a time, in file order.
package wordlist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// errStop ends a read once MaxWords is reached.
var errStop = errors.New("stop")

// Options controls how words are read.
type Options struct {
	Dedupe       bool // drop case-insensitive repeats
	MaxWords     int  // 0 = all words
	SkipComments bool // ignore text lines starting with '#'
}

// Summary reports what a read produced.
type Summary struct {
	Read       int // words handed to the callback
	Duplicates int // words dropped by Dedupe
	Skipped    int // blank and comment lines
}

// Source is a word list on disk.
type Source struct {
	path   string
	format FileFormat
	opts   Options
}

// Open detects the format of path and prepares a Source for it.
func Open(path string, opts Options) (*Source, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("Word list %s: %s", path, format)
	return &Source{path: path, format: format, opts: opts}, nil
}

// Format is the detected format.
func (s *Source) Format() FileFormat { return s.format }

// Each calls fn for every word in order. It stops with ctx.Err() when ctx is
// cancelled between words.
func (s *Source) Each(ctx context.Context, fn func(word string)) (Summary, error) {
	f := newFilter(ctx, s.opts, fn)

	var err error
	switch s.format {
	case FormatText:
		var file *os.File
		file, err = os.Open(s.path)
		if err != nil {
			err = fmt.Errorf("failed to open word list %s: %w", s.path, err)
			break
		}
		err = f.lines(file)
		file.Close()
	case FormatChunk:
		err = readChunkFile(s.path, f.word)
	case FormatChunkDir:
		var chunks []ChunkInfo
		chunks, err = chunkFiles(s.path)
		for _, c := range chunks {
			if err != nil || f.err != nil {
				break
			}
			err = readChunkFile(c.Filename, f.word)
		}
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownFormat, s.path)
	}
	return f.finish(err)
}

// ReadWords reads a line oriented word list from r, e.g. stdin.
func ReadWords(ctx context.Context, r io.Reader, opts Options, fn func(word string)) (Summary, error) {
	f := newFilter(ctx, opts, fn)
	return f.finish(f.lines(r))
}

// filter applies Options between a reader and the callback.
type filter struct {
	ctx     context.Context
	opts    Options
	fn      func(string)
	seen    *patricia.Trie
	summary Summary
	err     error
}

func newFilter(ctx context.Context, opts Options, fn func(string)) *filter {
	f := &filter{ctx: ctx, opts: opts, fn: fn}
	if opts.Dedupe {
		f.seen = patricia.NewTrie()
	}
	return f
}

// lines feeds every trimmed line of r through word.
func (f *filter) lines(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || (f.opts.SkipComments && strings.HasPrefix(line, "#")) {
			f.summary.Skipped++
			continue
		}
		if !f.word(line) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read words: %w", err)
	}
	return nil
}

// word hands one word to the callback. It returns false to stop reading.
func (f *filter) word(w string) bool {
	if err := f.ctx.Err(); err != nil {
		f.err = err
		return false
	}
	if f.seen != nil && !f.seen.Insert(patricia.Prefix(strings.ToLower(w)), struct{}{}) {
		f.summary.Duplicates++
		return true
	}

	f.fn(w)
	f.summary.Read++

	if f.opts.MaxWords > 0 && f.summary.Read >= f.opts.MaxWords {
		f.err = errStop
		return false
	}
	return true
}

func (f *filter) finish(err error) (Summary, error) {
	if err == nil && f.err != nil && !errors.Is(f.err, errStop) {
		err = f.err
	}
	return f.summary, err
}
