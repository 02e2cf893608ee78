package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/lexaudit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateText(t *testing.T) {
	assert.NoError(t, ValidateText("", 0))
	assert.NoError(t, ValidateText("Party A agrees", 100))
	assert.ErrorIs(t, ValidateText("\xff\xfe", 0), model.ErrInvalidInput)
	assert.ErrorIs(t, ValidateText("PDF\x00binary", 0), model.ErrInvalidInput)
	assert.ErrorIs(t, ValidateText(strings.Repeat("a", 11), 10), model.ErrInvalidInput)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadText_PlainText(t *testing.T) {
	path := writeFile(t, "contract.txt", "Party A and Party B")

	text, err := LoadText(path, 0)

	require.NoError(t, err)
	assert.Equal(t, "Party A and Party B", text)
}

func TestLoadText_HTML(t *testing.T) {
	page := `<html><head><title>Title</title><style>p{}</style></head>
	<body><p>Party A</p><script>var x = 'nda';</script><p>Party B</p></body></html>`
	path := writeFile(t, "contract.html", page)

	text, err := LoadText(path, 0)

	require.NoError(t, err)
	assert.Contains(t, text, "Party A")
	assert.Contains(t, text, "Party B")
	assert.NotContains(t, text, "var x")
	assert.NotContains(t, text, "Title")
	assert.Equal(t, model.ContractGeneric, ClassifyContractType(text))
}

func TestLoadText_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "contract.pdf", "%PDF-1.7")

	_, err := LoadText(path, 0)

	assert.ErrorIs(t, err, model.ErrUnsupportedFormat)
}

func TestLoadText_TooLarge(t *testing.T) {
	path := writeFile(t, "contract.txt", strings.Repeat("x", 64))

	_, err := LoadText(path, 16)

	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestLoadText_MissingFile(t *testing.T) {
	_, err := LoadText(filepath.Join(t.TempDir(), "nope.txt"), 0)

	require.Error(t, err)
	assert.Equal(t, model.CodeIO, model.ClassifyError(err))
}
