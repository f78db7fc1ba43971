package point_test

import (
	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/matpoint/internal/point"
)

func build(pos, vel mgl64.Vec3, mass float64) point.MaterialPoint {
	p, err := point.NewAt(pos, mass)
	Expect(err).NotTo(HaveOccurred())
	p.SetVelocity(vel)
	return p
}

var _ = Describe("MaterialPoint", func() {
	Describe("Evolute", func() {
		DescribeTable("zero force moves the point by v·dt",
			func(vel mgl64.Vec3, dt float64) {
				p := build(mgl64.Vec3{1, -2, 3}, vel, 4)
				start := p.Position()

				p.Evolute(mgl64.Vec3{}, dt)

				Expect(p.Velocity()).To(Equal(vel))
				Expect(p.Position()).To(Equal(start.Add(vel.Mul(dt))))
			},
			Entry("forward", mgl64.Vec3{1, 2, 3}, 0.5),
			Entry("backward", mgl64.Vec3{-1, 0, 0.25}, -2.0),
			Entry("tiny step", mgl64.Vec3{10, 10, 10}, 1e-6),
		)

		DescribeTable("dt = 0 is a no-op",
			func(force mgl64.Vec3) {
				p := build(mgl64.Vec3{5, 6, 7}, mgl64.Vec3{-1, 1, 2}, 0.3)
				before := p

				p.Evolute(force, 0)

				Expect(p.Equal(before)).To(BeTrue())
			},
			Entry("no force", mgl64.Vec3{}),
			Entry("large force", mgl64.Vec3{1e6, -1e6, 3}),
		)

		It("matches the worked example", func() {
			p, err := point.New(1, 2, 3, 2)
			Expect(err).NotTo(HaveOccurred())

			p.Evolute(mgl64.Vec3{0, 0, 4}, 1)

			Expect(p.Position()).To(Equal(mgl64.Vec3{1, 2, 4}))
			Expect(p.Velocity()).To(Equal(mgl64.Vec3{0, 0, 2}))
		})

		It("accumulates over repeated calls", func() {
			p, err := point.New(0, 0, 0, 1)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 10; i++ {
				p.Evolute(mgl64.Vec3{0, 0, -9.81}, 0.1)
			}

			Expect(p.Velocity()[2]).To(BeNumerically("~", -9.81, 1e-9))
			Expect(p.Position()[2]).To(BeNumerically("~", -0.5*9.81, 1e-9))
		})
	})

	Describe("equality and hashing", func() {
		var a, b, c point.MaterialPoint

		BeforeEach(func() {
			a = build(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{4, 5, 6}, 7)
			b = build(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{4, 5, 6}, 7)
			c = build(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{4, 5, 6}, 7)
		})

		It("is reflexive, symmetric and transitive", func() {
			Expect(a.Equal(a)).To(BeTrue())
			Expect(a.Equal(b)).To(Equal(b.Equal(a)))
			Expect(a.Equal(b) && b.Equal(c)).To(BeTrue())
			Expect(a.Equal(c)).To(BeTrue())
		})

		It("hashes equal points identically", func() {
			Expect(point.Hash(a)).To(Equal(point.Hash(b)))
		})

		It("collides for points differing only in x and y", func() {
			d := build(mgl64.Vec3{-10, 20, 3}, mgl64.Vec3{0, 0, 6}, 7)
			Expect(d.Equal(a)).To(BeFalse())
			Expect(point.Hash(d)).To(Equal(point.Hash(a)))
		})

		It("hashes pairs commutatively", func() {
			d := build(mgl64.Vec3{9, 9, 9}, mgl64.Vec3{}, 1)
			Expect(point.HashPair(a, d)).To(Equal(point.HashPair(d, a)))
		})
	})

	Describe("construction", func() {
		It("rejects a zero mass", func() {
			_, err := point.New(0, 0, 0, 0)
			Expect(err).To(MatchError(point.ErrInvalidMass))
		})
	})
})
