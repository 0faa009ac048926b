package scene_test

import (
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/myolab/myolab/internal/mjcf"
	"github.com/myolab/myolab/internal/scene"
)

func compile(src string) (*scene.Model, error) {
	doc, err := mjcf.Decode(strings.NewReader(src))
	Expect(err).NotTo(HaveOccurred())
	return scene.Compile(doc)
}

var _ = Describe("Compile", func() {
	Describe("the beam balance scene", func() {
		var m *scene.Model

		BeforeEach(func() {
			var err error
			m, err = scene.LoadBuiltin("balance")
			Expect(err).NotTo(HaveOccurred())
		})

		It("resolves the actuator to its tendon", func() {
			a, ok := m.Actuator("lPushPull")
			Expect(ok).To(BeTrue())
			Expect(a.Tendon).NotTo(BeNil())
			Expect(a.Tendon.Name).To(Equal("lThread"))
			Expect(a.Joint).To(BeNil())
		})

		It("threads the tendon through its sites in order", func() {
			tendon, ok := m.Tendon("lThread")
			Expect(ok).To(BeTrue())
			Expect(tendon.Kind).To(Equal(scene.SpatialKind))
			Expect(tendon.Sites).To(HaveLen(2))
			Expect(tendon.Sites[0].Name).To(Equal("lBeam"))
			Expect(tendon.Sites[1].Name).To(Equal("lFix"))
		})

		It("attaches beam sites to the beam body", func() {
			site, ok := m.Site("lBeam")
			Expect(ok).To(BeTrue())
			Expect(site.Body.Name).To(Equal("beam"))

			site, ok = m.Site("lFix")
			Expect(ok).To(BeTrue())
			Expect(site.Body.IsWorld()).To(BeTrue())
		})

		It("couples the pivot joints through the fixed tendon", func() {
			tendon, ok := m.Tendon("pivotCouple")
			Expect(ok).To(BeTrue())
			Expect(tendon.Kind).To(Equal(scene.FixedKind))
			Expect(tendon.Joints).To(HaveLen(2))
			Expect(tendon.Joints[0].Joint.Name).To(Equal("pivot"))
			Expect(tendon.Joints[0].Coef).To(Equal(1.0))
			Expect(tendon.Joints[1].Joint.Name).To(Equal("tilt"))
			Expect(tendon.Joints[1].Coef).To(Equal(-1.0))
		})

		It("keeps radian ranges unconverted", func() {
			j, ok := m.Joint("pivot")
			Expect(ok).To(BeTrue())
			Expect(j.Range[0]).To(BeNumerically("~", -0.6, 1e-12))
			Expect(j.Range[1]).To(BeNumerically("~", 0.6, 1e-12))
		})

		It("applies joint defaults and element overrides", func() {
			j, _ := m.Joint("pivot")
			Expect(j.Limited).To(BeTrue())         // from <default>
			Expect(j.Damping).To(Equal(0.02))      // overridden on the element
		})

		It("resolves the global options", func() {
			Expect(m.Options.Integrator).To(Equal("Euler"))
			Expect(m.Options.Timestep).To(Equal(0.002))
			Expect(m.Options.Iterations).To(Equal(50))
			Expect(m.Options.AngleUnit).To(Equal("radian"))
		})

		It("nests the body tree under world", func() {
			beam, ok := m.Body("beam")
			Expect(ok).To(BeTrue())
			Expect(beam.Parent.Name).To(Equal("stand"))
			Expect(beam.Parent.Parent.IsWorld()).To(BeTrue())
		})

		It("registers the root under the name world", func() {
			root, ok := m.Body("world")
			Expect(ok).To(BeTrue())
			Expect(root).To(BeIdenticalTo(m.World))
		})
	})

	Describe("the ball on string scene", func() {
		var m *scene.Model

		BeforeEach(func() {
			var err error
			m, err = scene.LoadBuiltin("ball")
			Expect(err).NotTo(HaveOccurred())
		})

		It("resolves the force sensor to its site", func() {
			s, ok := m.Sensor("ball_sensor")
			Expect(ok).To(BeTrue())
			Expect(s.Kind).To(Equal("force"))
			Expect(s.Site.Name).To(Equal("ball_site"))
			Expect(s.Site.Body.Name).To(Equal("ball"))
		})

		It("limits the string length", func() {
			tendon, ok := m.Tendon("string")
			Expect(ok).To(BeTrue())
			Expect(tendon.Limited).To(BeTrue())
			Expect(tendon.Range).To(Equal([2]float64{0, 0.4}))
			Expect(tendon.Sites[0].Name).To(Equal("box_site"))
			Expect(tendon.Sites[1].Name).To(Equal("ball_site"))
		})

		It("gives the ball a free joint", func() {
			j, ok := m.Joint("ball_free")
			Expect(ok).To(BeTrue())
			Expect(j.Type).To(Equal("free"))
		})

		It("resolves the floor material and its texture", func() {
			g, ok := m.Geom("floor")
			Expect(ok).To(BeTrue())
			Expect(g.Material).NotTo(BeNil())
			Expect(g.Material.Name).To(Equal("grid"))
			Expect(g.Material.Texture).To(Equal("grid"))

			_, ok = m.Material("grid")
			Expect(ok).To(BeTrue())
		})

		It("uses the RK4 option block", func() {
			Expect(m.Options.Integrator).To(Equal("RK4"))
			Expect(m.Options.Timestep).To(Equal(0.005))
		})
	})

	Describe("invariants", func() {
		It("rejects duplicate names within a class", func() {
			_, err := compile(`<mujoco><worldbody>
				<site name="a"/>
				<site name="a"/>
			</worldbody></mujoco>`)
			Expect(err).To(MatchError(scene.ErrDuplicateName))
		})

		It("allows the same name across classes", func() {
			m, err := compile(`<mujoco><worldbody>
				<site name="a"/>
				<body name="a"><joint name="a" type="hinge"/></body>
			</worldbody></mujoco>`)
			Expect(err).NotTo(HaveOccurred())
			_, ok := m.Site("a")
			Expect(ok).To(BeTrue())
			_, ok = m.Body("a")
			Expect(ok).To(BeTrue())
			_, ok = m.Joint("a")
			Expect(ok).To(BeTrue())
		})

		It("rejects a tendon site that does not exist", func() {
			_, err := compile(`<mujoco><worldbody><site name="a"/></worldbody>
			<tendon><spatial name="t">
				<site site="a"/>
				<site site="ghost"/>
			</spatial></tendon></mujoco>`)
			Expect(err).To(MatchError(scene.ErrUnresolvedRef))
			Expect(err).To(BeAssignableToTypeOf(&scene.CompileError{}))
		})

		It("rejects a spatial tendon with fewer than two sites", func() {
			_, err := compile(`<mujoco><worldbody><site name="a"/></worldbody>
			<tendon><spatial name="t"><site site="a"/></spatial></tendon></mujoco>`)
			Expect(err).To(MatchError(scene.ErrTendonTooShort))
		})

		It("rejects an actuator with both joint and tendon targets", func() {
			_, err := compile(`<mujoco><worldbody>
				<site name="a"/><site name="b"/>
				<body><joint name="j" type="hinge"/></body>
			</worldbody>
			<tendon><spatial name="t"><site site="a"/><site site="b"/></spatial></tendon>
			<actuator><motor name="m" joint="j" tendon="t"/></actuator></mujoco>`)
			Expect(err).To(MatchError(scene.ErrDualTarget))
		})

		It("rejects an actuator with no target", func() {
			_, err := compile(`<mujoco><worldbody/>
			<actuator><motor name="m"/></actuator></mujoco>`)
			Expect(err).To(MatchError(scene.ErrNoTarget))
		})

		It("rejects an inverted range", func() {
			_, err := compile(`<mujoco><worldbody>
				<body><joint name="j" type="hinge" range="1 -1"/></body>
			</worldbody></mujoco>`)
			Expect(err).To(MatchError(scene.ErrBadRange))
		})

		It("rejects a geom material that does not exist", func() {
			_, err := compile(`<mujoco><worldbody>
				<geom type="plane" material="ghost"/>
			</worldbody></mujoco>`)
			Expect(err).To(MatchError(scene.ErrUnresolvedRef))
		})

		It("rejects a sensor site that does not exist", func() {
			_, err := compile(`<mujoco><worldbody/>
			<sensor><force name="s" site="ghost"/></sensor></mujoco>`)
			Expect(err).To(MatchError(scene.ErrUnresolvedRef))
		})
	})

	Describe("angle units", func() {
		It("converts degree hinge ranges to radians", func() {
			m, err := compile(`<mujoco>
			<compiler angle="degree"/>
			<worldbody><body>
				<joint name="j" type="hinge" range="-90 90"/>
			</body></worldbody></mujoco>`)
			Expect(err).NotTo(HaveOccurred())

			j, _ := m.Joint("j")
			Expect(j.Range[0]).To(BeNumerically("~", -math.Pi/2, 1e-9))
			Expect(j.Range[1]).To(BeNumerically("~", math.Pi/2, 1e-9))
		})

		It("leaves slide ranges alone; they are lengths", func() {
			m, err := compile(`<mujoco>
			<compiler angle="degree"/>
			<worldbody><body>
				<joint name="j" type="slide" range="-0.5 0.5"/>
			</body></worldbody></mujoco>`)
			Expect(err).NotTo(HaveOccurred())

			j, _ := m.Joint("j")
			Expect(j.Range).To(Equal([2]float64{-0.5, 0.5}))
		})
	})

	Describe("defaults", func() {
		It("fills the joint type from the default class", func() {
			m, err := compile(`<mujoco>
			<default><joint type="slide"/></default>
			<worldbody><body><joint name="j"/></body></worldbody></mujoco>`)
			Expect(err).NotTo(HaveOccurred())

			j, _ := m.Joint("j")
			Expect(j.Type).To(Equal("slide"))
		})

		It("gives hinges a z axis when unset", func() {
			m, err := compile(`<mujoco><worldbody><body>
				<joint name="j" type="hinge"/>
			</body></worldbody></mujoco>`)
			Expect(err).NotTo(HaveOccurred())

			j, _ := m.Joint("j")
			Expect(j.Axis).To(Equal(mjcf.Vec{0, 0, 1}))
		})
	})

	Describe("enumeration", func() {
		It("walks all bodies depth first", func() {
			m, err := scene.LoadBuiltin("balance")
			Expect(err).NotTo(HaveOccurred())

			var names []string
			m.Walk(func(b *scene.Body) { names = append(names, b.Name) })
			Expect(names).To(Equal([]string{"world", "stand", "beam"}))
		})

		It("reports every reference edge", func() {
			m, err := scene.LoadBuiltin("ball")
			Expect(err).NotTo(HaveOccurred())

			refs := m.Refs()
			Expect(refs).To(ContainElement(scene.Ref{
				FromKind: "sensor", From: "ball_sensor", ToKind: "site", To: "ball_site",
			}))
			Expect(refs).To(ContainElement(scene.Ref{
				FromKind: "material", From: "grid", ToKind: "texture", To: "grid",
			}))
			Expect(refs).To(ContainElement(scene.Ref{
				FromKind: "tendon", From: "string", ToKind: "site", To: "box_site",
			}))
		})

		It("counts elements", func() {
			m, err := scene.LoadBuiltin("balance")
			Expect(err).NotTo(HaveOccurred())

			st := m.Stats()
			Expect(st.Bodies).To(Equal(2))
			Expect(st.Joints).To(Equal(2))
			Expect(st.Tendons).To(Equal(3))
			Expect(st.Actuators).To(Equal(2))
			Expect(st.Sites).To(Equal(4))
		})
	})

	Describe("builtins", func() {
		It("ships both scenes", func() {
			Expect(scene.BuiltinNames()).To(Equal([]string{"balance", "ball"}))
		})

		It("errors on unknown names", func() {
			_, err := scene.Builtin("ghost")
			Expect(err).To(HaveOccurred())
		})
	})
})
