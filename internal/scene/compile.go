package scene

import (
	"fmt"
	"math"

	"github.com/myolab/myolab/internal/mjcf"
)

// Compile resolves a decoded document into a Model, enforcing the
// format's invariants: unique names per element class, a single rooted
// body tree, and every cross-reference resolving to exactly one target.
// The input document is not modified.
func Compile(doc *mjcf.Document) (*Model, error) {
	m := &Model{
		Name:      doc.Model,
		bodies:    make(map[string]*Body),
		joints:    make(map[string]*Joint),
		geoms:     make(map[string]*Geom),
		sites:     make(map[string]*Site),
		tendons:   make(map[string]*Tendon),
		actuators: make(map[string]*Actuator),
		sensors:   make(map[string]*Sensor),
		materials: make(map[string]*mjcf.Material),
		textures:  make(map[string]*mjcf.Texture),
	}
	m.Options = resolveOptions(doc)

	c := &compiler{doc: doc, m: m, degToRad: m.Options.AngleUnit == "degree"}

	if err := c.assets(); err != nil {
		return nil, err
	}

	world := &Body{Name: "world"}
	m.World = world
	m.bodies[world.Name] = world
	if err := c.bodyChildren(world, doc.World.Geoms, doc.World.Sites, doc.World.Bodies); err != nil {
		return nil, err
	}

	if err := c.tendons(); err != nil {
		return nil, err
	}
	if err := c.actuators(); err != nil {
		return nil, err
	}
	if err := c.sensors(); err != nil {
		return nil, err
	}

	return m, nil
}

func resolveOptions(doc *mjcf.Document) Options {
	opts := Options{
		Timestep:   mjcf.DefaultTimestep,
		Integrator: "Euler",
		AngleUnit:  "degree",
		Coordinate: "local",
	}
	if doc.Compiler != nil {
		if doc.Compiler.Angle != "" {
			opts.AngleUnit = doc.Compiler.Angle
		}
		if doc.Compiler.Coordinate != "" {
			opts.Coordinate = doc.Compiler.Coordinate
		}
	}
	if doc.Option != nil {
		if doc.Option.Timestep != 0 {
			opts.Timestep = doc.Option.Timestep
		}
		if doc.Option.Integrator != "" {
			opts.Integrator = doc.Option.Integrator
		}
		opts.Gravity = doc.Option.Gravity
		opts.Iterations = doc.Option.Iterations
	}
	return opts
}

type compiler struct {
	doc      *mjcf.Document
	m        *Model
	degToRad bool
}

func (c *compiler) defaultJoint() *mjcf.Joint {
	if c.doc.Default == nil {
		return nil
	}
	return c.doc.Default.Joint
}

func (c *compiler) defaultGeom() *mjcf.Geom {
	if c.doc.Default == nil {
		return nil
	}
	return c.doc.Default.Geom
}

func (c *compiler) defaultSite() *mjcf.Site {
	if c.doc.Default == nil {
		return nil
	}
	return c.doc.Default.Site
}

func (c *compiler) assets() error {
	if c.doc.Asset == nil {
		return nil
	}
	for i := range c.doc.Asset.Textures {
		tex := &c.doc.Asset.Textures[i]
		if tex.Name != "" {
			if _, dup := c.m.textures[tex.Name]; dup {
				return compileErr(label("texture", tex.Name), ErrDuplicateName)
			}
			c.m.textures[tex.Name] = tex
		}
		c.m.Textures = append(c.m.Textures, tex)
	}
	for i := range c.doc.Asset.Materials {
		mat := &c.doc.Asset.Materials[i]
		if mat.Name != "" {
			if _, dup := c.m.materials[mat.Name]; dup {
				return compileErr(label("material", mat.Name), ErrDuplicateName)
			}
			c.m.materials[mat.Name] = mat
		}
		if mat.Texture != "" {
			if _, ok := c.m.textures[mat.Texture]; !ok {
				return refErr(label("material", mat.Name), mat.Texture, ErrUnresolvedRef)
			}
		}
		c.m.Materials = append(c.m.Materials, mat)
	}
	return nil
}

func (c *compiler) bodyChildren(b *Body, geoms []mjcf.Geom, sites []mjcf.Site, bodies []mjcf.Body) error {
	for _, g := range geoms {
		if err := c.geom(b, g); err != nil {
			return err
		}
	}
	for _, s := range sites {
		if err := c.site(b, s); err != nil {
			return err
		}
	}
	for _, child := range bodies {
		if err := c.body(b, child); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) body(parent *Body, src mjcf.Body) error {
	b := &Body{
		Name:   src.Name,
		Pos:    src.Pos,
		Quat:   src.Quat,
		Euler:  src.Euler,
		Parent: parent,
	}
	if src.Name != "" {
		if _, dup := c.m.bodies[src.Name]; dup {
			return compileErr(label("body", src.Name), ErrDuplicateName)
		}
		c.m.bodies[src.Name] = b
	}
	parent.Children = append(parent.Children, b)
	c.m.Bodies = append(c.m.Bodies, b)

	for _, j := range src.Joints {
		if err := c.joint(b, j); err != nil {
			return err
		}
	}
	return c.bodyChildren(b, src.Geoms, src.Sites, src.Bodies)
}

func (c *compiler) joint(b *Body, src mjcf.Joint) error {
	def := c.defaultJoint()

	typ := src.Type
	if typ == "" && def != nil {
		typ = def.Type
	}
	if typ == "" {
		typ = "hinge"
	}

	j := &Joint{
		Name:      src.Name,
		Type:      typ,
		Body:      b,
		Pos:       src.Pos,
		Axis:      src.Axis,
		Limited:   pickBool(src.Limited, defJointLimited(def)),
		Damping:   pickFloat(src.Damping, defJointDamping(def)),
		Stiffness: pickFloat(src.Stiffness, defJointStiffness(def)),
	}
	if len(j.Axis) == 0 && (typ == "hinge" || typ == "slide") {
		j.Axis = mjcf.Vec{0, 0, 1}
	}

	rng := src.Range
	if len(rng) == 0 && def != nil {
		rng = def.Range
	}
	pair, err := rangePair(rng, label("joint", src.Name))
	if err != nil {
		return err
	}
	// Hinge and ball limits are angles; slide limits are lengths.
	if c.degToRad && (typ == "hinge" || typ == "ball") {
		pair[0] *= math.Pi / 180
		pair[1] *= math.Pi / 180
	}
	j.Range = pair

	if src.Name != "" {
		if _, dup := c.m.joints[src.Name]; dup {
			return compileErr(label("joint", src.Name), ErrDuplicateName)
		}
		c.m.joints[src.Name] = j
	}
	b.Joints = append(b.Joints, j)
	return nil
}

func (c *compiler) geom(b *Body, src mjcf.Geom) error {
	def := c.defaultGeom()

	typ := src.Type
	if typ == "" && def != nil {
		typ = def.Type
	}
	if typ == "" {
		typ = "sphere"
	}

	g := &Geom{
		Name:     src.Name,
		Type:     typ,
		Body:     b,
		Size:     src.Size,
		Pos:      src.Pos,
		FromTo:   src.FromTo,
		RGBA:     pickVec(src.RGBA, defGeomRGBA(def)),
		Friction: pickVec(src.Friction, defGeomFriction(def)),
		Margin:   pickFloat(src.Margin, defGeomMargin(def)),
		SolRef:   pickVec(src.SolRef, defGeomSolRef(def)),
		SolImp:   pickVec(src.SolImp, defGeomSolImp(def)),
	}

	matName := src.Material
	if matName == "" && def != nil {
		matName = def.Material
	}
	if matName != "" {
		mat, ok := c.m.materials[matName]
		if !ok {
			return refErr(label("geom", src.Name), matName, ErrUnresolvedRef)
		}
		g.Material = mat
	}

	if src.Name != "" {
		if _, dup := c.m.geoms[src.Name]; dup {
			return compileErr(label("geom", src.Name), ErrDuplicateName)
		}
		c.m.geoms[src.Name] = g
	}
	b.Geoms = append(b.Geoms, g)
	return nil
}

func (c *compiler) site(b *Body, src mjcf.Site) error {
	def := c.defaultSite()

	s := &Site{
		Name: src.Name,
		Body: b,
		Pos:  src.Pos,
		Size: src.Size,
	}
	if len(s.Size) == 0 && def != nil {
		s.Size = def.Size
	}

	if src.Name != "" {
		if _, dup := c.m.sites[src.Name]; dup {
			return compileErr(label("site", src.Name), ErrDuplicateName)
		}
		c.m.sites[src.Name] = s
	}
	b.Sites = append(b.Sites, s)
	return nil
}

func (c *compiler) tendons() error {
	if c.doc.Tendon == nil {
		return nil
	}
	for _, src := range c.doc.Tendon.Spatial {
		t := &Tendon{
			Name:      src.Name,
			Kind:      SpatialKind,
			Width:     floatVal(src.Width),
			Stiffness: floatVal(src.Stiffness),
			Damping:   floatVal(src.Damping),
			Limited:   boolVal(src.Limited),
		}
		pair, err := rangePair(src.Range, label("tendon", src.Name))
		if err != nil {
			return err
		}
		t.Range = pair

		if len(src.Sites) < 2 {
			return compileErr(label("tendon", src.Name), ErrTendonTooShort)
		}
		for _, ref := range src.Sites {
			site, ok := c.m.sites[ref.Site]
			if !ok {
				return refErr(label("tendon", src.Name), ref.Site, ErrUnresolvedRef)
			}
			t.Sites = append(t.Sites, site)
		}
		if err := c.registerTendon(t); err != nil {
			return err
		}
	}
	for _, src := range c.doc.Tendon.Fixed {
		t := &Tendon{Name: src.Name, Kind: FixedKind}
		for _, ref := range src.Joints {
			joint, ok := c.m.joints[ref.Joint]
			if !ok {
				return refErr(label("tendon", src.Name), ref.Joint, ErrUnresolvedRef)
			}
			t.Joints = append(t.Joints, TendonJoint{Joint: joint, Coef: ref.Coef})
		}
		if err := c.registerTendon(t); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) registerTendon(t *Tendon) error {
	if t.Name != "" {
		if _, dup := c.m.tendons[t.Name]; dup {
			return compileErr(label("tendon", t.Name), ErrDuplicateName)
		}
		c.m.tendons[t.Name] = t
	}
	c.m.Tendons = append(c.m.Tendons, t)
	return nil
}

func (c *compiler) actuators() error {
	if c.doc.Actuator == nil {
		return nil
	}
	kinds := []struct {
		kind string
		list []mjcf.Actuator
	}{
		{"motor", c.doc.Actuator.Motor},
		{"position", c.doc.Actuator.Position},
		{"general", c.doc.Actuator.General},
	}
	for _, group := range kinds {
		for _, src := range group.list {
			a := &Actuator{
				Name:        src.Name,
				Kind:        group.kind,
				CtrlLimited: boolVal(src.CtrlLimited),
				Gear:        src.Gear,
				GainPrm:     src.GainPrm,
			}
			pair, err := rangePair(src.CtrlRange, label("actuator", src.Name))
			if err != nil {
				return err
			}
			a.CtrlRange = pair

			switch {
			case src.Joint != "" && src.Tendon != "":
				return compileErr(label("actuator", src.Name), ErrDualTarget)
			case src.Joint != "":
				joint, ok := c.m.joints[src.Joint]
				if !ok {
					return refErr(label("actuator", src.Name), src.Joint, ErrUnresolvedRef)
				}
				a.Joint = joint
			case src.Tendon != "":
				tendon, ok := c.m.tendons[src.Tendon]
				if !ok {
					return refErr(label("actuator", src.Name), src.Tendon, ErrUnresolvedRef)
				}
				a.Tendon = tendon
			default:
				return compileErr(label("actuator", src.Name), ErrNoTarget)
			}

			if src.Name != "" {
				if _, dup := c.m.actuators[src.Name]; dup {
					return compileErr(label("actuator", src.Name), ErrDuplicateName)
				}
				c.m.actuators[src.Name] = a
			}
			c.m.Actuators = append(c.m.Actuators, a)
		}
	}
	return nil
}

func (c *compiler) sensors() error {
	if c.doc.Sensor == nil {
		return nil
	}
	groups := []struct {
		kind string
		list []mjcf.SiteSensor
	}{
		{"force", c.doc.Sensor.Force},
		{"torque", c.doc.Sensor.Torque},
	}
	for _, group := range groups {
		for _, src := range group.list {
			site, ok := c.m.sites[src.Site]
			if !ok {
				return refErr(label("sensor", src.Name), src.Site, ErrUnresolvedRef)
			}
			s := &Sensor{Name: src.Name, Kind: group.kind, Site: site}
			if src.Name != "" {
				if _, dup := c.m.sensors[src.Name]; dup {
					return compileErr(label("sensor", src.Name), ErrDuplicateName)
				}
				c.m.sensors[src.Name] = s
			}
			c.m.Sensors = append(c.m.Sensors, s)
		}
	}
	return nil
}

func label(kind, name string) string {
	if name == "" {
		return kind
	}
	return fmt.Sprintf("%s %q", kind, name)
}

func rangePair(v mjcf.Vec, element string) ([2]float64, error) {
	var pair [2]float64
	if len(v) == 0 {
		return pair, nil
	}
	if len(v) != 2 || v[0] > v[1] {
		return pair, compileErr(element, ErrBadRange)
	}
	pair[0], pair[1] = v[0], v[1]
	return pair, nil
}

func pickBool(v, def *bool) bool {
	if v != nil {
		return *v
	}
	if def != nil {
		return *def
	}
	return false
}

func pickFloat(v, def *float64) float64 {
	if v != nil {
		return *v
	}
	if def != nil {
		return *def
	}
	return 0
}

func pickVec(v, def mjcf.Vec) mjcf.Vec {
	if len(v) > 0 {
		return v
	}
	return def
}

func boolVal(v *bool) bool {
	return v != nil && *v
}

func floatVal(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func defJointLimited(d *mjcf.Joint) *bool {
	if d == nil {
		return nil
	}
	return d.Limited
}

func defJointDamping(d *mjcf.Joint) *float64 {
	if d == nil {
		return nil
	}
	return d.Damping
}

func defJointStiffness(d *mjcf.Joint) *float64 {
	if d == nil {
		return nil
	}
	return d.Stiffness
}

func defGeomRGBA(d *mjcf.Geom) mjcf.Vec {
	if d == nil {
		return nil
	}
	return d.RGBA
}

func defGeomFriction(d *mjcf.Geom) mjcf.Vec {
	if d == nil {
		return nil
	}
	return d.Friction
}

func defGeomMargin(d *mjcf.Geom) *float64 {
	if d == nil {
		return nil
	}
	return d.Margin
}

func defGeomSolRef(d *mjcf.Geom) mjcf.Vec {
	if d == nil {
		return nil
	}
	return d.SolRef
}

func defGeomSolImp(d *mjcf.Geom) mjcf.Vec {
	if d == nil {
		return nil
	}
	return d.SolImp
}
