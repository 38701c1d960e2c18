package tagresolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixMatcherExtract(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    string
		ok      bool
	}{
		{pattern: "v", name: "v1.2.0", want: "1.2.0", ok: true},
		{pattern: "v", name: "release-1.2.0", ok: false},
		{pattern: "v", name: "v", ok: false},
		{pattern: "sdk-", name: "sdk-1.3.290.0", want: "1.3.290.0", ok: true},
		{pattern: "sdk-", name: "vulkan-sdk-1.3.290.0", ok: false},
		{pattern: "sdk-|vulkan-sdk-", name: "vulkan-sdk-1.3.290.0", want: "1.3.290.0", ok: true},
		{pattern: "sdk-|vulkan-sdk-", name: "sdk-1.3.283.0", want: "1.3.283.0", ok: true},
		{pattern: "(sdk|vulkan-sdk)-", name: "vulkan-sdk-1.3", want: "1.3", ok: true},
		{pattern: "rel-", name: "rel-abc", want: "abc", ok: true},
		{pattern: "", name: "1.0", want: "1.0", ok: true},
		{pattern: `v\.`, name: "v1.0", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.pattern+"/"+tc.name, func(t *testing.T) {
			matcher, err := CompilePrefix(tc.pattern)
			require.NoError(t, err)

			got, ok := matcher.Extract(tc.name)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCompilePrefixInvalid(t *testing.T) {
	_, err := CompilePrefix("v(")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPrefix)
}
