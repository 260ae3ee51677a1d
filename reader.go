package xmlmap

import (
	"fmt"
	"io"
)

// A ChunkFunc produces successive chunks of an XML document. Each call
// returns the next chunk as a string or []byte; returning io.EOF signals
// exhaustion. Any other error aborts the read and is preserved end-to-end:
// the error eventually returned by the parse satisfies errors.Is against it.
type ChunkFunc func() (any, error)

// NewChunkReader adapts a chunk generator into an io.Reader suitable for
// ParseReader or NewDecoder. Chunks larger than the buffer handed to Read
// are retained and served by later calls. A nil chunk or a chunk of an
// unsupported type yields a SourceError.
func NewChunkReader(next ChunkFunc) io.Reader {
	return &chunkReader{next: next}
}

type chunkReader struct {
	next    ChunkFunc
	pending pendingBytes
	done    bool
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if !r.pending.empty() {
		return r.pending.copyInto(p), nil
	}
	if r.done {
		return 0, io.EOF
	}

	chunk, err := r.nextNonEmptyChunk()
	if err != nil {
		return 0, err
	}
	if chunk == nil {
		r.done = true
		return 0, io.EOF
	}

	n := copy(p, chunk)
	if n < len(chunk) {
		r.pending.fill(chunk[n:])
	}
	return n, nil
}

// nextNonEmptyChunk pulls chunks until one carries bytes or the generator
// is exhausted. A nil return with nil error means exhaustion.
func (r *chunkReader) nextNonEmptyChunk() ([]byte, error) {
	for {
		chunk, err := r.next()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, &SourceError{Err: err}
		}
		switch c := chunk.(type) {
		case nil:
			return nil, &SourceError{Msg: "chunk is nil"}
		case string:
			if len(c) > 0 {
				return []byte(c), nil
			}
		case []byte:
			if len(c) > 0 {
				return c, nil
			}
		default:
			return nil, &SourceError{Msg: fmt.Sprintf("unsupported chunk type %T", c)}
		}
	}
}

// pendingBytes holds surplus chunk bytes beyond what the last Read could
// take.
type pendingBytes struct {
	buf []byte
	off int
}

func (p *pendingBytes) empty() bool {
	return p.off >= len(p.buf)
}

func (p *pendingBytes) fill(b []byte) {
	p.buf = append(p.buf[:0], b...)
	p.off = 0
}

func (p *pendingBytes) copyInto(out []byte) int {
	n := copy(out, p.buf[p.off:])
	p.off += n
	return n
}
