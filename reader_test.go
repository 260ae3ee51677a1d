package xmlmap_test

import (
	"errors"
	"io"
	"testing"

	"github.com/KimNorgaard/go-xmlmap"
	"github.com/stretchr/testify/require"
)

func chunkFunc(chunks ...any) xmlmap.ChunkFunc {
	i := 0
	return func() (any, error) {
		if i >= len(chunks) {
			return nil, io.EOF
		}
		c := chunks[i]
		i++
		return c, nil
	}
}

func TestChunkReader(t *testing.T) {
	t.Run("string chunks", func(t *testing.T) {
		r := xmlmap.NewChunkReader(chunkFunc("<a><b>", "1</b>", "</a>"))
		got, err := xmlmap.ParseReader(r)
		require.NoError(t, err)
		require.Equal(t, mapping("a", mapping("b", "1")), got)
	})

	t.Run("byte chunks", func(t *testing.T) {
		r := xmlmap.NewChunkReader(chunkFunc([]byte("<a>"), []byte("x</a>")))
		got, err := xmlmap.ParseReader(r)
		require.NoError(t, err)
		require.Equal(t, mapping("a", "x"), got)
	})

	t.Run("mixed chunk types", func(t *testing.T) {
		r := xmlmap.NewChunkReader(chunkFunc("<a>", []byte("<b/>"), "</a>"))
		got, err := xmlmap.ParseReader(r)
		require.NoError(t, err)
		require.Equal(t, mapping("a", mapping("b", nil)), got)
	})

	t.Run("empty chunks skipped", func(t *testing.T) {
		r := xmlmap.NewChunkReader(chunkFunc("", []byte{}, "<a>1</a>", ""))
		got, err := xmlmap.ParseReader(r)
		require.NoError(t, err)
		require.Equal(t, mapping("a", "1"), got)
	})

	t.Run("surplus bytes buffered across reads", func(t *testing.T) {
		r := xmlmap.NewChunkReader(chunkFunc("<a>hello</a>"))
		buf := make([]byte, 3)
		var got []byte
		for {
			n, err := r.Read(buf)
			got = append(got, buf[:n]...)
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
		}
		require.Equal(t, "<a>hello</a>", string(got))
	})

	t.Run("nil chunk", func(t *testing.T) {
		r := xmlmap.NewChunkReader(chunkFunc("<a>", nil))
		_, err := xmlmap.ParseReader(r)
		var srcErr *xmlmap.SourceError
		require.ErrorAs(t, err, &srcErr)
		require.Contains(t, srcErr.Error(), "nil")
	})

	t.Run("unsupported chunk type", func(t *testing.T) {
		r := xmlmap.NewChunkReader(chunkFunc(42))
		_, err := xmlmap.ParseReader(r)
		var srcErr *xmlmap.SourceError
		require.ErrorAs(t, err, &srcErr)
		require.Contains(t, srcErr.Error(), "int")
	})

	t.Run("source error identity preserved", func(t *testing.T) {
		sentinel := errors.New("backend unavailable")
		first := true
		r := xmlmap.NewChunkReader(func() (any, error) {
			if first {
				first = false
				return "<a>", nil
			}
			return nil, sentinel
		})
		_, err := xmlmap.ParseReader(r)
		require.ErrorIs(t, err, sentinel)
		var srcErr *xmlmap.SourceError
		require.ErrorAs(t, err, &srcErr)
	})

	t.Run("source ends mid-document", func(t *testing.T) {
		r := xmlmap.NewChunkReader(chunkFunc("<a><b>1</b>"))
		_, err := xmlmap.ParseReader(r)
		require.Error(t, err)
	})
}
