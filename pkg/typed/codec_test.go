package typed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID    string   `json:"id" yaml:"id"`
	Items []string `json:"items" yaml:"items"`
}

func TestCodecFor(t *testing.T) {
	for name, want := range map[string]string{"": "json", "json": "json", ".yaml": "yaml", "YML": "yaml"} {
		c, err := CodecFor(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, c.Name(), name)
	}

	_, err := CodecFor("csv")
	assert.Error(t, err)
}

func TestCodecs(t *testing.T) {
	in := sample{ID: "x", Items: []string{"a", "b"}}

	for _, c := range []Codec{NewJSONCodec(true), NewYAMLCodec(true)} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out sample
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
			assert.Equal(t, "."+c.Name(), c.Ext())
		})
	}
}

func TestCodecs_Strict(t *testing.T) {
	t.Run("JSON Unknown Field", func(t *testing.T) {
		var out sample
		assert.Error(t, NewJSONCodec(true).Unmarshal([]byte(`{"id":"x","extra":1}`), &out))
		assert.NoError(t, NewJSONCodec(false).Unmarshal([]byte(`{"id":"x","extra":1}`), &out))
	})

	t.Run("JSON Trailing Data", func(t *testing.T) {
		var out sample
		assert.Error(t, NewJSONCodec(true).Unmarshal([]byte(`{"id":"x"} {"id":"y"}`), &out))
	})

	t.Run("YAML Unknown Field", func(t *testing.T) {
		var out sample
		assert.Error(t, NewYAMLCodec(true).Unmarshal([]byte("id: x\nextra: 1\n"), &out))
		assert.NoError(t, NewYAMLCodec(false).Unmarshal([]byte("id: x\nextra: 1\n"), &out))
	})

	t.Run("YAML Empty Document", func(t *testing.T) {
		var out []sample
		assert.NoError(t, NewYAMLCodec(false).Unmarshal(nil, &out))
		assert.Nil(t, out)
	})
}
