package glsl

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func includes(files map[string]string) IncludeFunc {
	return func(name string) ([]byte, error) {
		if src, ok := files[name]; ok {
			return []byte(src), nil
		}
		return nil, errors.New("not found")
	}
}

func TestPreprocessDefinesAfterVersion(t *testing.T) {
	out := Preprocess("#version 330\nvoid main() {}\n", map[string]int{"NOISE_SIZE": 32, "NOISE_COLUMNS": 6}, nil)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "#version 330", lines[0])
	assert.Equal(t, "#define NOISE_COLUMNS 6", lines[1])
	assert.Equal(t, "#define NOISE_SIZE 32", lines[2])
	assert.Equal(t, "void main() {}", lines[3])
}

func TestPreprocessAddsVersion(t *testing.T) {
	out := Preprocess("\ufeffvoid main() {}", nil, nil)
	assert.True(t, strings.HasPrefix(out, DefaultVersion+"\nvoid main() {}"))
}

func TestPreprocessIncludesOnce(t *testing.T) {
	files := map[string]string{
		"common.glsl": "#include \"math.glsl\"\nfloat common_fn();",
		"math.glsl":   "float saturate(float v);",
	}
	src := "#version 330\n#include \"common.glsl\"\n#include \"math.glsl\"\nvoid main() {}"
	out := Preprocess(src, nil, includes(files))

	assert.Equal(t, 1, strings.Count(out, "float saturate(float v);"))
	assert.Equal(t, 1, strings.Count(out, "float common_fn();"))
	assert.Less(t, strings.Index(out, "saturate"), strings.Index(out, "common_fn"))
	assert.NotContains(t, out, "#include")
}

func TestPreprocessMissingInclude(t *testing.T) {
	out := Preprocess("#include \"missing.glsl\"\nvoid main() {}", nil, includes(nil))
	assert.NotContains(t, out, "missing.glsl")
	assert.Contains(t, out, "void main() {}")
}
