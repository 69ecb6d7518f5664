package source

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalize strips a leading BOM and turns \r\n into \n. A lone \r stays,
// since it is a line terminator in its own right only inside strings.
func normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

// lineStarts returns the offset of each line of content.
func lineStarts(content []byte) []uint32 {
	starts := make([]uint32, 1, 1+bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, offset(i+1))
		}
	}
	return starts
}

// offset converts an index into content to a span offset. Files over
// 4 GiB cannot be addressed by Span.
func offset(i int) uint32 {
	off, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(fmt.Errorf("source offset %d: %w", i, err))
	}
	return off
}
