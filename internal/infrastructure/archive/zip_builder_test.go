package archive_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-notas/internal/application/ports"
	"github.com/jhoicas/portal-notas/internal/infrastructure/archive"
)

func TestBuild_EntradasEnOrden(t *testing.T) {
	data, err := archive.NewZipBuilder().Build([]ports.ArchiveEntry{
		{Name: "NOTA_1_ACME.pdf", Content: []byte("uno")},
		{Name: "NOTA_2_BETA.pdf", Content: []byte("dos")},
	})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "NOTA_1_ACME.pdf", zr.File[0].Name)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	assert.Equal(t, "dos", string(got))
}
