package format

import (
	"bytes"
	"testing"

	"github.com/kk-code-lab/postmd/internal/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTreeIsValidYAML(t *testing.T) {
	doc := markdown.Parse("# T\n\nsome **bold** [x](https://example.com)\n\n![a](/blob/x) ![b](/blob/y)", markdown.Options{})
	var buf bytes.Buffer
	require.NoError(t, Tree(&buf, doc))

	var decoded struct {
		Blocks []map[string]any `yaml:"blocks"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Blocks, 3)
	assert.Equal(t, "heading", decoded.Blocks[0]["type"])
	assert.Equal(t, 1, decoded.Blocks[0]["level"])
	assert.Equal(t, "paragraph", decoded.Blocks[1]["type"])
	assert.Equal(t, "gallery", decoded.Blocks[2]["type"])
	assert.Contains(t, buf.String(), "gallery: [x, y]")
}
