package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/edsrzf/mmap-go"

	"github.com/bastiangx/wordfix/internal/utils"
)

// ErrBadFormat is returned for truncated or inconsistent binary dictionaries.
var ErrBadFormat = errors.New("bad dictionary format")

// Binary layout, little endian:
//
//	int32  entry count
//	repeated:
//	  uint16 word length in bytes
//	  []byte UTF-8 word
//	  uint32 frequency
const (
	headerSize = 4
	lenSize    = 2
	freqSize   = 4
)

// LoadBinary maps the file at path read-only and decodes it.
func LoadBinary(path string, keep Filter) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary file %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat dictionary file %s: %w", path, err)
	}
	if info.Size() < headerSize {
		return nil, fmt.Errorf("%s: %w: file is %d bytes", path, ErrBadFormat, info.Size())
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to map dictionary file %s: %w", path, err)
	}
	defer data.Unmap()

	d, err := DecodeBinary(data, keep)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("Binary dictionary %s loaded: %d words", path, d.Len())
	return d, nil
}

// DecodeBinary parses a binary dictionary held in memory. Words are copied
// out of data, which may be released afterwards.
func DecodeBinary(data []byte, keep Filter) (*Dictionary, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: missing header", ErrBadFormat)
	}
	count := int32(binary.LittleEndian.Uint32(data))
	if count < 0 {
		return nil, fmt.Errorf("%w: negative entry count %d", ErrBadFormat, count)
	}

	d := New()
	off := headerSize
	for i := 0; i < int(count); i++ {
		if off+lenSize > len(data) {
			return nil, fmt.Errorf("%w: entry %d: truncated length", ErrBadFormat, i)
		}
		n := int(binary.LittleEndian.Uint16(data[off:]))
		off += lenSize
		if off+n+freqSize > len(data) {
			return nil, fmt.Errorf("%w: entry %d: truncated word", ErrBadFormat, i)
		}
		word := utils.NormalizeWord(string(data[off : off+n]))
		off += n
		freq := int64(binary.LittleEndian.Uint32(data[off:]))
		off += freqSize

		if word == "" || (keep != nil && !keep(word)) {
			continue
		}
		d.Set(word, freq)
	}
	if off != len(data) {
		log.Warnf("Ignoring %d trailing bytes after %d entries", len(data)-off, count)
	}
	return d, nil
}

// WriteBinary encodes d in the binary layout. Custom words are left out.
func WriteBinary(w io.Writer, d *Dictionary) error {
	n := d.Len() - len(d.custom)
	if n > math.MaxInt32 {
		return fmt.Errorf("%w: %d entries do not fit the header", ErrBadFormat, n)
	}
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(n)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	err := d.Each(func(word string, freq int64) error {
		if d.IsCustom(word) {
			return nil
		}
		if len(word) > math.MaxUint16 {
			return fmt.Errorf("%w: word of %d bytes is too long", ErrBadFormat, len(word))
		}
		if freq < 0 || freq > math.MaxUint32 {
			return fmt.Errorf("%w: frequency %d of %q does not fit uint32", ErrBadFormat, freq, word)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(word))); err != nil {
			return err
		}
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		return binary.Write(bw, binary.LittleEndian, uint32(freq))
	})
	if err != nil {
		return fmt.Errorf("failed to write dictionary: %w", err)
	}
	return bw.Flush()
}

// SaveBinary writes d to path.
func SaveBinary(path string, d *Dictionary) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dictionary file %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WriteBinary(file, d)
}
