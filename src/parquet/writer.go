package parquet

import (
	"io"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/writer"
)

type PokemonWriter struct {
	buffer *buffer.BufferFile
	writer *writer.ParquetWriter
	rows   int
}

const InitialCapacity = 1024 * 1024

const parallelism = 4

func NewPokemonWriter() (*PokemonWriter, error) {
	bufferFile := buffer.NewBufferFileCapacity(InitialCapacity)
	w, err := writer.NewParquetWriter(bufferFile, new(Pokemon), parallelism)
	if err != nil {
		return nil, err
	}
	return &PokemonWriter{
		buffer: bufferFile,
		writer: w,
	}, nil
}

func (w *PokemonWriter) WritePokemon(pokemon *Pokemon) error {
	if err := w.writer.Write(pokemon); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Finish flushes the footer and rewinds the buffer for reading.
func (w *PokemonWriter) Finish() error {
	if err := w.writer.WriteStop(); err != nil {
		return err
	}
	_, err := w.buffer.Seek(0, io.SeekStart)
	return err
}

func (w *PokemonWriter) Rows() int {
	return w.rows
}

func (w *PokemonWriter) Size() int {
	return len(w.buffer.Bytes())
}

func (w *PokemonWriter) Bytes() []byte {
	return w.buffer.Bytes()
}

func (w *PokemonWriter) BufferReader() io.Reader {
	return w.buffer
}
