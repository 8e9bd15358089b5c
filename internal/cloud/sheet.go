package cloud

import "github.com/go-gl/mathgl/mgl32"

type Kind int

const (
	KindFloat Kind = iota
	KindColor
	KindVector
	KindMatrix
	KindTexture
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindColor:
		return "color"
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	case KindTexture:
		return "texture"
	}
	return "unknown"
}

// Uniform is one published value. Only the member matching Kind is meaningful;
// colours are carried in Vector.
type Uniform struct {
	Kind    Kind
	Float   float32
	Vector  mgl32.Vec4
	Matrix  mgl32.Mat4
	Texture Texture
}

// Sheet is a named set of uniforms bound to one program. Names keep their
// first-insertion order so backends upload them deterministically.
type Sheet struct {
	Shader string
	values map[string]Uniform
	order  []string
}

func NewSheet(shader string) *Sheet {
	return &Sheet{
		Shader: shader,
		values: make(map[string]Uniform),
	}
}

func (s *Sheet) set(name string, u Uniform) {
	if _, exists := s.values[name]; !exists {
		s.order = append(s.order, name)
	}
	s.values[name] = u
}

func (s *Sheet) SetFloat(name string, v float32) {
	s.set(name, Uniform{Kind: KindFloat, Float: v})
}

func (s *Sheet) SetColor(name string, c Color) {
	s.set(name, Uniform{Kind: KindColor, Vector: c.Vec4()})
}

func (s *Sheet) SetVector(name string, v mgl32.Vec4) {
	s.set(name, Uniform{Kind: KindVector, Vector: v})
}

func (s *Sheet) SetMatrix(name string, m mgl32.Mat4) {
	s.set(name, Uniform{Kind: KindMatrix, Matrix: m})
}

func (s *Sheet) SetTexture(name string, t Texture) {
	s.set(name, Uniform{Kind: KindTexture, Texture: t})
}

func (s *Sheet) Get(name string) (Uniform, bool) {
	u, ok := s.values[name]
	return u, ok
}

func (s *Sheet) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Names returns the uniform names in insertion order.
func (s *Sheet) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Sheet) Len() int {
	return len(s.order)
}

func (s *Sheet) Each(fn func(name string, u Uniform)) {
	for _, name := range s.order {
		fn(name, s.values[name])
	}
}
