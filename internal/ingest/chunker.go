package ingest

import "fmt"

// Chunk splits text into overlapping character windows. Each chunk holds at
// most size characters and consecutive chunks share exactly overlap
// characters; the final chunk may be shorter. Text shorter than size yields a
// single chunk. Requires 0 <= overlap < size.
func Chunk(text string, size, overlap int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("ingest: chunk size must be > 0 (got %d)", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("ingest: chunk overlap must satisfy 0 <= overlap < size (got overlap=%d size=%d)", overlap, size)
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}
	if len(runes) <= size {
		return []string{text}, nil
	}

	step := size - overlap
	out := make([]string, 0, (len(runes)-overlap+step-1)/step)
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end >= len(runes) {
			out = append(out, string(runes[start:]))
			break
		}
		out = append(out, string(runes[start:end]))
	}
	return out, nil
}
