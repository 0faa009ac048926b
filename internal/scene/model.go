package scene

import "github.com/myolab/myolab/internal/mjcf"

// Options are the resolved global simulation options of a model.
type Options struct {
	Timestep   float64
	Gravity    mjcf.Vec
	Integrator string
	Iterations int
	AngleUnit  string // "degree" or "radian", as authored
	Coordinate string
}

// Model is the compiled, immutable form of a document.
type Model struct {
	Name    string
	Options Options

	// World is the root of the body tree.
	World *Body

	Bodies    []*Body // depth-first order, world excluded
	Tendons   []*Tendon
	Actuators []*Actuator
	Sensors   []*Sensor
	Materials []*mjcf.Material
	Textures  []*mjcf.Texture

	bodies    map[string]*Body
	joints    map[string]*Joint
	geoms     map[string]*Geom
	sites     map[string]*Site
	tendons   map[string]*Tendon
	actuators map[string]*Actuator
	sensors   map[string]*Sensor
	materials map[string]*mjcf.Material
	textures  map[string]*mjcf.Texture
}

type Body struct {
	Name     string
	Pos      mjcf.Vec
	Quat     mjcf.Vec
	Euler    mjcf.Vec
	Parent   *Body // nil for world
	Children []*Body
	Joints   []*Joint
	Geoms    []*Geom
	Sites    []*Site
}

// IsWorld reports whether this is the root body.
func (b *Body) IsWorld() bool { return b.Parent == nil }

type Joint struct {
	Name      string
	Type      string
	Body      *Body
	Pos       mjcf.Vec
	Axis      mjcf.Vec
	Limited   bool
	Range     [2]float64 // radians for hinge/ball joints
	Damping   float64
	Stiffness float64
}

type Geom struct {
	Name     string // may be empty
	Type     string
	Body     *Body
	Size     mjcf.Vec
	Pos      mjcf.Vec
	FromTo   mjcf.Vec
	Material *mjcf.Material // nil when unset
	RGBA     mjcf.Vec
	Friction mjcf.Vec
	Margin   float64
	SolRef   mjcf.Vec
	SolImp   mjcf.Vec
}

type Site struct {
	Name string
	Body *Body
	Pos  mjcf.Vec
	Size mjcf.Vec
}

// Tendon kinds.
const (
	SpatialKind = "spatial"
	FixedKind   = "fixed"
)

type Tendon struct {
	Name      string
	Kind      string
	Width     float64
	Stiffness float64
	Damping   float64
	Limited   bool
	Range     [2]float64

	// Sites is the ordered path of a spatial tendon.
	Sites []*Site
	// Joints is the weighted combination of a fixed tendon.
	Joints []TendonJoint
}

type TendonJoint struct {
	Joint *Joint
	Coef  float64
}

type Actuator struct {
	Name        string
	Kind        string // "motor", "position", "general"
	Joint       *Joint
	Tendon      *Tendon
	CtrlLimited bool
	CtrlRange   [2]float64
	Gear        mjcf.Vec
	GainPrm     mjcf.Vec
}

type Sensor struct {
	Name string
	Kind string // "force", "torque"
	Site *Site
}

func (m *Model) Body(name string) (*Body, bool) {
	b, ok := m.bodies[name]
	return b, ok
}

func (m *Model) Joint(name string) (*Joint, bool) {
	j, ok := m.joints[name]
	return j, ok
}

func (m *Model) Geom(name string) (*Geom, bool) {
	g, ok := m.geoms[name]
	return g, ok
}

func (m *Model) Site(name string) (*Site, bool) {
	s, ok := m.sites[name]
	return s, ok
}

func (m *Model) Tendon(name string) (*Tendon, bool) {
	t, ok := m.tendons[name]
	return t, ok
}

func (m *Model) Actuator(name string) (*Actuator, bool) {
	a, ok := m.actuators[name]
	return a, ok
}

func (m *Model) Sensor(name string) (*Sensor, bool) {
	s, ok := m.sensors[name]
	return s, ok
}

func (m *Model) Material(name string) (*mjcf.Material, bool) {
	mat, ok := m.materials[name]
	return mat, ok
}

// Walk visits every body depth-first, world first.
func (m *Model) Walk(fn func(*Body)) {
	var visit func(*Body)
	visit = func(b *Body) {
		fn(b)
		for _, c := range b.Children {
			visit(c)
		}
	}
	visit(m.World)
}

// Stats counts elements per class.
type Stats struct {
	Bodies    int
	Joints    int
	Geoms     int
	Sites     int
	Tendons   int
	Actuators int
	Sensors   int
	Materials int
	Textures  int
}

func (m *Model) Stats() Stats {
	s := Stats{
		Bodies:    len(m.Bodies),
		Tendons:   len(m.Tendons),
		Actuators: len(m.Actuators),
		Sensors:   len(m.Sensors),
		Materials: len(m.Materials),
		Textures:  len(m.Textures),
	}
	m.Walk(func(b *Body) {
		s.Joints += len(b.Joints)
		s.Geoms += len(b.Geoms)
		s.Sites += len(b.Sites)
	})
	return s
}
