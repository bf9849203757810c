package logtail

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

const chunkSize = 64 * 1024

// completeEnd returns the offset just past the last newline in [0, size),
// or 0 when the file holds no complete line.
func completeEnd(r io.ReaderAt, size int64) (int64, error) {
	buf := make([]byte, chunkSize)
	for pos := size; pos > 0; {
		lo := max(0, pos-chunkSize)
		chunk := buf[:pos-lo]
		if err := readChunk(r, chunk, lo); err != nil {
			return 0, err
		}
		if i := bytes.LastIndexByte(chunk, '\n'); i >= 0 {
			return lo + int64(i) + 1, nil
		}
		pos = lo
	}
	return 0, nil
}

// tailStart returns the offset where the last n complete lines ending at end
// begin. end must be 0 or just past a newline. Only the tail of the file is
// read, in chunks, so the cost does not grow with file size.
func tailStart(r io.ReaderAt, end int64, n int) (int64, error) {
	if n <= 0 || end == 0 {
		return end, nil
	}
	buf := make([]byte, chunkSize)
	seen := 0
	// end-1 is the newline closing the last line; start scanning before it.
	for pos := end - 1; pos > 0; {
		lo := max(0, pos-chunkSize)
		chunk := buf[:pos-lo]
		if err := readChunk(r, chunk, lo); err != nil {
			return 0, err
		}
		for i := len(chunk) - 1; i >= 0; i-- {
			if chunk[i] != '\n' {
				continue
			}
			seen++
			if seen == n {
				return lo + int64(i) + 1, nil
			}
		}
		pos = lo
	}
	return 0, nil
}

func readChunk(r io.ReaderAt, chunk []byte, off int64) error {
	n, err := r.ReadAt(chunk, off)
	if n == len(chunk) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("read chunk at %d: %w", off, err)
}

// readComplete reads [off, end) and returns the newline-terminated lines in
// it along with the number of bytes they cover. A trailing fragment without
// a newline is left unread.
func readComplete(r io.ReaderAt, off, end int64) ([]string, int64, error) {
	if end <= off {
		return nil, 0, nil
	}
	br := bufio.NewReaderSize(io.NewSectionReader(r, off, end-off), chunkSize)
	var (
		lines    []string
		consumed int64
	)
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, consumed, nil
			}
			return lines, consumed, err
		}
		consumed += int64(len(line))
		lines = append(lines, trimEOL(line))
	}
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
