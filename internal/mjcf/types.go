package mjcf

import "encoding/xml"

// Document is the root <mujoco> element.
type Document struct {
	XMLName  xml.Name   `xml:"mujoco"`
	Model    string     `xml:"model,attr,omitempty"`
	Compiler *Compiler  `xml:"compiler"`
	Option   *Option    `xml:"option"`
	Visual   *Visual    `xml:"visual"`
	Default  *Default   `xml:"default"`
	Asset    *Asset     `xml:"asset"`
	World    Worldbody  `xml:"worldbody"`
	Tendon   *Tendons   `xml:"tendon"`
	Actuator *Actuators `xml:"actuator"`
	Sensor   *Sensors   `xml:"sensor"`
}

type Compiler struct {
	Angle           string `xml:"angle,attr,omitempty"`
	Coordinate      string `xml:"coordinate,attr,omitempty"`
	InertiaFromGeom string `xml:"inertiafromgeom,attr,omitempty"`
}

type Option struct {
	Timestep   float64 `xml:"timestep,attr,omitempty"`
	Gravity    Vec     `xml:"gravity,attr,omitempty"`
	Integrator string  `xml:"integrator,attr,omitempty"`
	Iterations int     `xml:"iterations,attr,omitempty"`
}

// Visual settings are cosmetic and engine-specific; they are carried
// through verbatim.
type Visual struct {
	InnerXML string `xml:",innerxml"`
}

// Default supplies attribute values for elements that leave them unset.
type Default struct {
	Joint *Joint `xml:"joint"`
	Geom  *Geom  `xml:"geom"`
	Site  *Site  `xml:"site"`
}

type Asset struct {
	Textures  []Texture  `xml:"texture"`
	Materials []Material `xml:"material"`
}

type Texture struct {
	Name    string `xml:"name,attr,omitempty"`
	Type    string `xml:"type,attr,omitempty"`
	Builtin string `xml:"builtin,attr,omitempty"`
	RGB1    Vec    `xml:"rgb1,attr,omitempty"`
	RGB2    Vec    `xml:"rgb2,attr,omitempty"`
	Width   int    `xml:"width,attr,omitempty"`
	Height  int    `xml:"height,attr,omitempty"`
}

type Material struct {
	Name        string   `xml:"name,attr,omitempty"`
	Texture     string   `xml:"texture,attr,omitempty"`
	TexRepeat   Vec      `xml:"texrepeat,attr,omitempty"`
	Specular    *float64 `xml:"specular,attr,omitempty"`
	Shininess   *float64 `xml:"shininess,attr,omitempty"`
	Reflectance *float64 `xml:"reflectance,attr,omitempty"`
	RGBA        Vec      `xml:"rgba,attr,omitempty"`
}

// Worldbody is the root of the body tree. It is a body with no name,
// pose, or joints of its own.
type Worldbody struct {
	Geoms  []Geom `xml:"geom"`
	Sites  []Site `xml:"site"`
	Bodies []Body `xml:"body"`
}

type Body struct {
	Name     string    `xml:"name,attr,omitempty"`
	Pos      Vec       `xml:"pos,attr,omitempty"`
	Quat     Vec       `xml:"quat,attr,omitempty"`
	Euler    Vec       `xml:"euler,attr,omitempty"`
	Inertial *Inertial `xml:"inertial"`
	Joints   []Joint   `xml:"joint"`
	Geoms    []Geom    `xml:"geom"`
	Sites    []Site    `xml:"site"`
	Bodies   []Body    `xml:"body"`
}

type Inertial struct {
	Pos         Vec     `xml:"pos,attr,omitempty"`
	Mass        float64 `xml:"mass,attr,omitempty"`
	DiagInertia Vec     `xml:"diaginertia,attr,omitempty"`
}

type Joint struct {
	Name      string   `xml:"name,attr,omitempty"`
	Type      string   `xml:"type,attr,omitempty"`
	Pos       Vec      `xml:"pos,attr,omitempty"`
	Axis      Vec      `xml:"axis,attr,omitempty"`
	Range     Vec      `xml:"range,attr,omitempty"`
	Limited   *bool    `xml:"limited,attr,omitempty"`
	Damping   *float64 `xml:"damping,attr,omitempty"`
	Stiffness *float64 `xml:"stiffness,attr,omitempty"`
}

type Geom struct {
	Name        string   `xml:"name,attr,omitempty"`
	Type        string   `xml:"type,attr,omitempty"`
	Size        Vec      `xml:"size,attr,omitempty"`
	Pos         Vec      `xml:"pos,attr,omitempty"`
	Quat        Vec      `xml:"quat,attr,omitempty"`
	FromTo      Vec      `xml:"fromto,attr,omitempty"`
	Material    string   `xml:"material,attr,omitempty"`
	RGBA        Vec      `xml:"rgba,attr,omitempty"`
	Friction    Vec      `xml:"friction,attr,omitempty"`
	Margin      *float64 `xml:"margin,attr,omitempty"`
	ConType     *int     `xml:"contype,attr,omitempty"`
	ConAffinity *int     `xml:"conaffinity,attr,omitempty"`
	ConDim      *int     `xml:"condim,attr,omitempty"`
	SolRef      Vec      `xml:"solref,attr,omitempty"`
	SolImp      Vec      `xml:"solimp,attr,omitempty"`
}

type Site struct {
	Name string `xml:"name,attr,omitempty"`
	Type string `xml:"type,attr,omitempty"`
	Pos  Vec    `xml:"pos,attr,omitempty"`
	Size Vec    `xml:"size,attr,omitempty"`
	RGBA Vec    `xml:"rgba,attr,omitempty"`
}

type Tendons struct {
	Spatial []SpatialTendon `xml:"spatial"`
	Fixed   []FixedTendon   `xml:"fixed"`
}

// SpatialTendon is a path threaded through an ordered sequence of sites.
type SpatialTendon struct {
	Name      string       `xml:"name,attr,omitempty"`
	Width     *float64     `xml:"width,attr,omitempty"`
	Stiffness *float64     `xml:"stiffness,attr,omitempty"`
	Damping   *float64     `xml:"damping,attr,omitempty"`
	Limited   *bool        `xml:"limited,attr,omitempty"`
	Range     Vec          `xml:"range,attr,omitempty"`
	RGBA      Vec          `xml:"rgba,attr,omitempty"`
	Sites     []TendonSite `xml:"site"`
}

type TendonSite struct {
	Site string `xml:"site,attr"`
}

// FixedTendon is a weighted linear combination of joint coordinates.
type FixedTendon struct {
	Name   string        `xml:"name,attr,omitempty"`
	Joints []TendonJoint `xml:"joint"`
}

type TendonJoint struct {
	Joint string  `xml:"joint,attr"`
	Coef  float64 `xml:"coef,attr"`
}

type Actuators struct {
	Motor    []Actuator `xml:"motor"`
	Position []Actuator `xml:"position"`
	General  []Actuator `xml:"general"`
}

// Actuator drives a joint or a tendon; exactly one of the two must be
// named.
type Actuator struct {
	Name        string   `xml:"name,attr,omitempty"`
	Joint       string   `xml:"joint,attr,omitempty"`
	Tendon      string   `xml:"tendon,attr,omitempty"`
	CtrlLimited *bool    `xml:"ctrllimited,attr,omitempty"`
	CtrlRange   Vec      `xml:"ctrlrange,attr,omitempty"`
	Gear        Vec      `xml:"gear,attr,omitempty"`
	GainPrm     Vec      `xml:"gainprm,attr,omitempty"`
	Kp          *float64 `xml:"kp,attr,omitempty"`
}

type Sensors struct {
	Force  []SiteSensor `xml:"force"`
	Torque []SiteSensor `xml:"torque"`
}

type SiteSensor struct {
	Name string `xml:"name,attr,omitempty"`
	Site string `xml:"site,attr"`
}
