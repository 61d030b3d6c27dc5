package wordlist

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents different word list formats
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatText                // one word per line
	FormatChunk               // single binary chunk file (dict_NNNN.bin)
	FormatChunkDir            // directory of binary chunk files
)

// maxChunkWords guards against reading garbage as a word count header.
const maxChunkWords = 1_000_000

// ErrUnknownFormat is returned when a path is no supported word list.
var ErrUnknownFormat = errors.New("unknown word list format")

// FormatInfo contains metadata about a word list format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word List",
		MinSize:     0, // any extension
	},
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Chunked Binary Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4, // word count header
	},
	FormatChunkDir: {
		Format:      FormatChunkDir,
		Description: "Directory of Chunked Binary Dictionaries",
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// ValidateFileFormat checks if a path matches the expected format
func ValidateFileFormat(path string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("%w: %d", ErrUnknownFormat, expectedFormat)
	}

	if expectedFormat == FormatChunkDir {
		if !fileInfo.IsDir() {
			return fmt.Errorf("%s is not a directory", path)
		}
		files, err := chunkFiles(path)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no chunk files found in %s", path)
		}
		return nil
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory, expected %s", path, formatInfo.Description)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			path, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(path))
	validExt := len(formatInfo.Extensions) == 0
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			path, ext, formatInfo.Description, formatInfo.Extensions)
	}

	if expectedFormat == FormatChunk {
		return validateChunkHeader(path)
	}
	return nil
}

// validateChunkHeader checks the word count header of a chunk file
func validateChunkHeader(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if wordCount < 0 {
		return fmt.Errorf("invalid word count in %s: %d (negative)", filename, wordCount)
	}
	if wordCount > maxChunkWords {
		return fmt.Errorf("suspicious word count in %s: %d (too large)", filename, wordCount)
	}

	log.Debugf("Binary file %s validated: %d words", filename, wordCount)
	return nil
}

// DetectFileFormat works out which format path holds.
func DetectFileFormat(path string) (FileFormat, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if fileInfo.IsDir() {
		if err := ValidateFileFormat(path, FormatChunkDir); err != nil {
			return FormatUnknown, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
		}
		return FormatChunkDir, nil
	}

	if strings.ToLower(filepath.Ext(path)) == ".bin" {
		if err := ValidateFileFormat(path, FormatChunk); err != nil {
			return FormatUnknown, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
		}
		return FormatChunk, nil
	}

	if err := ValidateFileFormat(path, FormatText); err != nil {
		return FormatUnknown, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}
	return FormatText, nil
}
