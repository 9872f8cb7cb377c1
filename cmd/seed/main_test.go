package main

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestDecodeCharset_Windows1250(t *testing.T) {
	raw, err := charmap.Windows1250.NewEncoder().String("name\nMłotek\n")
	require.NoError(t, err)

	r, err := decodeCharset("Windows-1250", strings.NewReader(raw))
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)

	assert.Equal(t, "name\nMłotek\n", string(out))
}

func TestDecodeCharset_Desconocido(t *testing.T) {
	_, err := decodeCharset("ebcdic", strings.NewReader(""))

	assert.Error(t, err)
}
