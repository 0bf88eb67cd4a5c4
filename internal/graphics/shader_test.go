package graphics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cod3rgl/internal/gpu"
	"cod3rgl/internal/gpu/gputest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testVertexSource   = "#version 410 core\nin vec3 vertexPosition;\nvoid main() {}\n"
	testFragmentSource = "#version 410 core\nout vec4 fragColor;\nvoid main() {}\n"
)

func writeShaders(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	vs := filepath.Join(dir, "default.vert")
	fs := filepath.Join(dir, "default.frag")
	require.NoError(t, os.WriteFile(vs, []byte(testVertexSource), 0o644))
	require.NoError(t, os.WriteFile(fs, []byte(testFragmentSource), 0o644))
	return vs, fs
}

func assertInvalid(t *testing.T, s *Shader) {
	t.Helper()
	require.NotNil(t, s)
	assert.Zero(t, s.ID)
	assert.False(t, s.Valid())
	for loc := ShaderLocation(0); loc < LocCount; loc++ {
		assert.Equal(t, int32(-1), s.Location(loc))
	}
}

func TestLoadShader(t *testing.T) {
	dev := gputest.NewRecorder()
	vs, fs := writeShaders(t)

	s, err := LoadShader(dev, vs, fs)
	require.NoError(t, err)
	assert.True(t, s.Valid())
	assert.Equal(t, int32(0), s.Location(LocVertexPosition))
	assert.Equal(t, int32(1), s.Location(LocVertexColor))
	assert.Equal(t, int32(2), s.Location(LocMatrixModel))
	assert.Equal(t, []gpu.AttribBinding{
		{Name: AttribPositionName, Location: AttribPositionSlot},
		{Name: AttribColorName, Location: AttribColorSlot},
	}, dev.Bindings)
	assert.Contains(t, dev.Calls, "DeleteShader 1")
}

func TestLoadShaderMissingVertexFile(t *testing.T) {
	dev := gputest.NewRecorder()
	_, fs := writeShaders(t)

	s, err := LoadShader(dev, filepath.Join(t.TempDir(), "missing.vert"), fs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceReadFailed)
	assertInvalid(t, s)
	assert.Zero(t, dev.LivePrograms())
}

func TestLoadShaderCodeCompileFailure(t *testing.T) {
	dev := gputest.NewRecorder()
	dev.FailStages[gpu.FragmentStage] = true

	s, err := LoadShaderCode(dev, testVertexSource, testFragmentSource)
	assert.ErrorIs(t, err, ErrShaderCompileFailed)
	assert.Contains(t, err.Error(), "fragment")
	assertInvalid(t, s)
	// the vertex stage that did compile is released
	assert.Contains(t, dev.Calls, "DeleteShader 1")
}

func TestLoadShaderCodeLinkFailure(t *testing.T) {
	dev := gputest.NewRecorder()
	dev.FailLink = true

	s, err := LoadShaderCode(dev, testVertexSource, testFragmentSource)
	assert.ErrorIs(t, err, ErrShaderLinkFailed)
	assertInvalid(t, s)
}

func TestShaderAbsentLocationsAreSkipped(t *testing.T) {
	dev := gputest.NewRecorder()
	delete(dev.Names, UniformViewName)

	s, err := LoadShaderCode(dev, testVertexSource, testFragmentSource)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), s.Location(LocMatrixView))

	s.SetMatrix4(LocMatrixView, mgl32.Ident4())
	s.SetMatrix4(LocMatrixModel, mgl32.Ident4())
	assert.Len(t, dev.Uniforms, 1)
	assert.Contains(t, dev.Uniforms, int32(2))
}

func TestShaderReloadKeepsOldProgramOnFailure(t *testing.T) {
	dev := gputest.NewRecorder()
	vs, fs := writeShaders(t)
	s, err := LoadShader(dev, vs, fs)
	require.NoError(t, err)
	old := s.ID

	dev.FailLink = true
	require.Error(t, s.Reload())
	assert.Equal(t, old, s.ID)

	dev.FailLink = false
	require.NoError(t, s.Reload())
	assert.NotEqual(t, old, s.ID)
	assert.Equal(t, 1, dev.LivePrograms())
}

func TestShaderDispose(t *testing.T) {
	dev := gputest.NewRecorder()
	s, err := LoadShaderCode(dev, testVertexSource, testFragmentSource)
	require.NoError(t, err)

	s.Dispose()
	assertInvalid(t, s)
	assert.Zero(t, dev.LivePrograms())
	s.Dispose()
}

func TestShaderWatcherSignalsEdits(t *testing.T) {
	vs, fs := writeShaders(t)
	w, err := NewShaderWatcher(vs, fs)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	assert.False(t, w.Changed())

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(vs), "notes.txt"), []byte("x"), 0o644))
	time.Sleep(50 * time.Millisecond)
	assert.False(t, w.Changed())

	require.NoError(t, os.WriteFile(fs, []byte(testFragmentSource+"\n"), 0o644))
	assert.Eventually(t, w.Changed, 2*time.Second, 10*time.Millisecond)
}
