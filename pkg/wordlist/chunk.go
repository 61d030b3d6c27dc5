package wordlist

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Chunk files use the wordserve dictionary layout, all little endian:
//
//	int32  word count
//	repeated: uint16 length, length bytes of UTF-8 word, uint16 rank
//
// Ranks are carried through but play no part in anagram search.

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ChunkID  int
	Filename string
}

// chunkFiles lists dict_NNNN.bin files in dir, ordered by chunk ID.
func chunkFiles(dir string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		chunks = append(chunks, ChunkInfo{ChunkID: chunkID, Filename: file})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})
	return chunks, nil
}

// ChunkFileName is the file name for a chunk ID, e.g. dict_0001.bin.
func ChunkFileName(chunkID int) string {
	return fmt.Sprintf("dict_%04d.bin", chunkID)
}

// readChunk calls fn for every word of one chunk, in file order. fn returning
// false stops the read early without error.
func readChunk(r io.Reader, fn func(word string) bool) error {
	reader := bufio.NewReader(r)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		return fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 || totalEntries > maxChunkWords {
		return fmt.Errorf("invalid chunk word count %d", totalEntries)
	}

	for count := 0; count < int(totalEntries); count++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("chunk truncated after %d of %d words", count, totalEntries)
			}
			return fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return fmt.Errorf("failed to read rank: %w", err)
		}

		if !fn(string(wordBytes)) {
			return nil
		}
	}
	return nil
}

// readChunkFile opens filename and reads it with readChunk.
func readChunkFile(filename string, fn func(word string) bool) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	if err := readChunk(file, fn); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

// WriteChunk writes words as one chunk. Ranks follow word order, starting at 1.
func WriteChunk(w io.Writer, words []string) error {
	if len(words) > maxChunkWords {
		return fmt.Errorf("chunk of %d words exceeds limit %d", len(words), maxChunkWords)
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}
	for i, word := range words {
		if len(word) > math.MaxUint16 {
			return fmt.Errorf("word %d is %d bytes long, limit %d", i, len(word), math.MaxUint16)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(word))); err != nil {
			return err
		}
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		rank := uint16(min(i+1, math.MaxUint16))
		if err := binary.Write(bw, binary.LittleEndian, rank); err != nil {
			return err
		}
	}
	return bw.Flush()
}
