package graphics

import (
	"errors"
	"fmt"
	"os"

	"cod3rgl/internal/gpu"
	"cod3rgl/internal/logging"

	"github.com/go-gl/mathgl/mgl32"
)

// Names the shader sources must use for the default locations
const (
	AttribPositionName    = "vertexPosition"
	AttribColorName       = "vertexColor"
	UniformProjectionName = "projection"
	UniformViewName       = "view"
	UniformModelName      = "model"
)

// Attribute slots bound before linking
const (
	AttribPositionSlot uint32 = 0
	AttribColorSlot    uint32 = 1
)

// ShaderLocation indexes Shader.Locs
type ShaderLocation int

const (
	LocVertexPosition ShaderLocation = iota
	LocVertexColor
	LocMatrixProjection
	LocMatrixView
	LocMatrixModel
	LocCount
)

// Shader is a linked program and the locations of its well-known inputs.
// ID 0 marks a program that failed to load; every location is then -1 and
// drawing with it is a no-op.
type Shader struct {
	ID   uint32
	Locs [LocCount]int32

	VertexPath   string
	FragmentPath string

	dev gpu.Device
}

func invalidShader(dev gpu.Device) *Shader {
	s := &Shader{dev: dev}
	for i := range s.Locs {
		s.Locs[i] = -1
	}
	return s
}

// LoadShader reads the vertex and fragment sources from disk and builds a
// program. An empty path skips that stage. It always returns a usable
// *Shader; on any failure the shader is invalid and the error says why.
func LoadShader(dev gpu.Device, vertexPath, fragmentPath string) (*Shader, error) {
	var readErrs []error
	vertexSource, err := loadText(vertexPath)
	if err != nil {
		readErrs = append(readErrs, err)
	}
	fragmentSource, err := loadText(fragmentPath)
	if err != nil {
		readErrs = append(readErrs, err)
	}

	s, err := LoadShaderCode(dev, vertexSource, fragmentSource)
	s.VertexPath = vertexPath
	s.FragmentPath = fragmentPath
	if err != nil || len(readErrs) > 0 {
		return s, errors.Join(append(readErrs, err)...)
	}
	return s, nil
}

func loadText(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Logger().Warn("text file could not be opened", "path", path, "error", err)
		return "", fmt.Errorf("%w: %s: %v", ErrResourceReadFailed, path, err)
	}
	return string(data), nil
}

// LoadShaderCode compiles and links a program from source text. An empty
// source means the stage is missing, and a program needs both stages.
func LoadShaderCode(dev gpu.Device, vertexSource, fragmentSource string) (*Shader, error) {
	s := invalidShader(dev)
	log := logging.Logger()

	stages := []struct {
		stage  gpu.ShaderStage
		source string
	}{
		{gpu.VertexStage, vertexSource},
		{gpu.FragmentStage, fragmentSource},
	}

	var compiled []uint32
	var errs []error
	defer func() {
		for _, id := range compiled {
			dev.DeleteShader(id)
		}
	}()

	for _, st := range stages {
		if st.source == "" {
			errs = append(errs, fmt.Errorf("%w: no %s stage", ErrShaderLinkFailed, st.stage))
			continue
		}
		id, infoLog, ok := dev.CompileShader(st.stage, st.source)
		if !ok {
			log.Warn("failed to compile shader", "stage", st.stage, "log", infoLog)
			errs = append(errs, fmt.Errorf("%w: %s: %s", ErrShaderCompileFailed, st.stage, infoLog))
			continue
		}
		log.Debug("shader compiled", "stage", st.stage, "id", id)
		compiled = append(compiled, id)
	}
	if len(errs) > 0 {
		log.Warn("shader program could not be loaded")
		return s, errors.Join(errs...)
	}

	program, infoLog, ok := dev.LinkProgram(compiled, []gpu.AttribBinding{
		{Name: AttribPositionName, Location: AttribPositionSlot},
		{Name: AttribColorName, Location: AttribColorSlot},
	})
	if !ok {
		log.Warn("failed to link shader program", "log", infoLog)
		return s, fmt.Errorf("%w: %s", ErrShaderLinkFailed, infoLog)
	}

	s.ID = program
	s.setDefaultLocations()
	log.Info("shader program loaded", "id", program,
		"position", s.Locs[LocVertexPosition], "color", s.Locs[LocVertexColor])
	return s, nil
}

func (s *Shader) setDefaultLocations() {
	s.Locs[LocVertexPosition] = s.dev.AttribLocation(s.ID, AttribPositionName)
	s.Locs[LocVertexColor] = s.dev.AttribLocation(s.ID, AttribColorName)
	s.Locs[LocMatrixProjection] = s.dev.UniformLocation(s.ID, UniformProjectionName)
	s.Locs[LocMatrixView] = s.dev.UniformLocation(s.ID, UniformViewName)
	s.Locs[LocMatrixModel] = s.dev.UniformLocation(s.ID, UniformModelName)
}

// Valid reports whether the program linked
func (s *Shader) Valid() bool { return s != nil && s.ID != 0 }

// Location returns the location for loc, -1 when absent
func (s *Shader) Location(loc ShaderLocation) int32 {
	if s == nil || loc < 0 || loc >= LocCount {
		return -1
	}
	return s.Locs[loc]
}

// Use activates the shader program
func (s *Shader) Use() {
	s.dev.UseProgram(s.ID)
}

// SetMatrix4 sets a matrix uniform; absent locations are skipped
func (s *Shader) SetMatrix4(loc ShaderLocation, m mgl32.Mat4) {
	if l := s.Location(loc); l != -1 {
		s.dev.UniformMatrix4(l, m)
	}
}

// Reload rebuilds the program from its source files. On failure the current
// program is kept and the error is returned.
func (s *Shader) Reload() error {
	next, err := LoadShader(s.dev, s.VertexPath, s.FragmentPath)
	if err != nil {
		return err
	}
	s.Dispose()
	s.ID = next.ID
	s.Locs = next.Locs
	return nil
}

// Dispose deletes the program
func (s *Shader) Dispose() {
	if s.ID == 0 {
		return
	}
	s.dev.DeleteProgram(s.ID)
	logging.Logger().Info("unloaded shader program", "id", s.ID)
	s.ID = 0
	for i := range s.Locs {
		s.Locs[i] = -1
	}
}
