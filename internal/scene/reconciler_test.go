package scene

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gapsim/internal/dataset"
	"github.com/san-kum/gapsim/internal/scale"
)

func slice(year int, recs ...dataset.Record) dataset.Slice {
	return dataset.Slice{Year: year, Records: recs}
}

func changeIDs(cs []Change) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

var _ = Describe("Reconciler", func() {
	var (
		reg *scale.Registry
		r   *Reconciler
		a   = dataset.Record{ID: "A", Wealth: 1420, Longevity: 30, Population: 2000, Category: "Asia"}
		b   = dataset.Record{ID: "B", Wealth: 14200, Longevity: 60, Population: 2000, Category: "Europe"}
		c   = dataset.Record{ID: "C", Wealth: 142, Longevity: 45, Population: 2000, Category: "Africa"}
	)

	BeforeEach(func() {
		reg = scale.NewRegistry(scale.DefaultParams())
		r = NewReconciler(reg)
	})

	It("creates every glyph on the first frame at its target", func() {
		plan := r.Reconcile(slice(1800, b, a))

		Expect(changeIDs(plan.Create)).To(Equal([]string{"A", "B"}))
		Expect(plan.Update).To(BeEmpty())
		Expect(plan.Remove).To(BeEmpty())
		Expect(r.Len()).To(Equal(2))
		Expect(r.Settled()).To(BeTrue())

		g, ok := r.Glyph("A")
		Expect(ok).To(BeTrue())
		Expect(g.Current().R).To(BeNumerically("~", 5, 1e-9))
		Expect(g.Current().Y).To(BeNumerically("~", reg.Y.Map(30), 1e-9))
	})

	It("partitions live {A,B} against target {B,C}", func() {
		r.Reconcile(slice(1800, a, b))
		plan := r.Reconcile(slice(1801, b, c))

		Expect(plan.Remove).To(Equal([]string{"A"}))
		Expect(changeIDs(plan.Create)).To(Equal([]string{"C"}))
		Expect(changeIDs(plan.Update)).To(Equal([]string{"B"}))

		_, ok := r.Glyph("A")
		Expect(ok).To(BeFalse())
		Expect(r.Len()).To(Equal(2))
	})

	It("fixes fill at creation from the category color", func() {
		r.Reconcile(slice(1800, a))
		g, _ := r.Glyph("A")
		Expect(g.Fill).To(Equal(reg.Color.Color("Asia")))

		moved := a
		moved.Category = "Europe"
		r.Reconcile(slice(1801, moved))
		Expect(g.Fill).To(Equal(reg.Color.Color("Asia")))
	})

	It("interpolates updates linearly in plot space", func() {
		r.Reconcile(slice(1800, a))
		start := reg.X.Map(1420)

		next := a
		next.Wealth = 14200
		plan := r.Reconcile(slice(1801, next))
		end := reg.X.Map(14200)

		Expect(plan.Update).To(HaveLen(1))
		Expect(plan.Update[0].From.X).To(BeNumerically("~", start, 1e-9))
		Expect(plan.Update[0].To.X).To(BeNumerically("~", end, 1e-9))

		r.Advance(DefaultTransition / 2)
		g, _ := r.Glyph("A")
		Expect(g.Current().X).To(BeNumerically("~", (start+end)/2, 1e-9))
		Expect(r.Settled()).To(BeFalse())

		r.Advance(DefaultTransition)
		Expect(g.Current().X).To(BeNumerically("~", end, 1e-9))
		Expect(r.Settled()).To(BeTrue())
	})

	It("retargets an in-flight transition from its current value", func() {
		r.Reconcile(slice(1800, a))
		next := a
		next.Longevity = 90
		r.Reconcile(slice(1801, next))
		r.Advance(DefaultTransition / 4)

		g, _ := r.Glyph("A")
		mid := g.Current()

		again := a
		again.Longevity = 0
		plan := r.Reconcile(slice(1802, again))
		Expect(plan.Update[0].From).To(Equal(mid))
		Expect(plan.Update[0].To.Y).To(BeNumerically("~", reg.Y.Map(0), 1e-9))
	})

	It("is idempotent when reconciled twice without elapsed time", func() {
		r.Reconcile(slice(1800, a, b))
		moved := a
		moved.Wealth = 4000
		first := r.Reconcile(slice(1801, moved, b))
		second := r.Reconcile(slice(1801, moved, b))

		Expect(second.Create).To(BeEmpty())
		Expect(second.Remove).To(BeEmpty())
		Expect(second.Update).To(Equal(first.Update))
	})

	It("clears the scene on an empty slice", func() {
		r.Reconcile(slice(1800, a, b))
		plan := r.Reconcile(slice(1801))

		Expect(plan.Remove).To(Equal([]string{"A", "B"}))
		Expect(r.Len()).To(BeZero())
		Expect(r.Glyphs()).To(BeEmpty())
	})

	It("renders out-of-domain values off canvas without clamping", func() {
		poor := dataset.Record{ID: "P", Wealth: 100, Longevity: 95, Population: 2000}
		r.Reconcile(slice(1800, poor))

		snap := r.Glyphs()[0]
		Expect(snap.X).To(BeNumerically("<", 0))
		Expect(snap.Y).To(BeNumerically("<", 0))
	})

	It("keeps zero and negative wealth finite", func() {
		broke := dataset.Record{ID: "Z", Wealth: 0, Longevity: 40, Population: 2000}
		debt := dataset.Record{ID: "N", Wealth: -5, Longevity: 40, Population: -1e12}
		plan := r.Reconcile(slice(1800, broke, debt))

		for _, ch := range plan.Create {
			Expect(ch.To.X).To(Equal(float64(OffCanvas)))
			Expect(math.IsInf(ch.To.Y, 0) || math.IsNaN(ch.To.Y)).To(BeFalse())
		}
		n, _ := r.Glyph("N")
		Expect(n.Target().R).To(BeZero())

		plan = r.Reconcile(slice(1801, broke))
		Expect(plan.Update).To(HaveLen(1))
		Expect(plan.Update[0].From.X).To(Equal(float64(OffCanvas)))
	})

	Context("with enter from origin", func() {
		BeforeEach(func() {
			r = NewReconciler(reg, WithEnterFromOrigin(true), WithTransition(200*time.Millisecond))
		})

		It("grows new glyphs from zero radius", func() {
			plan := r.Reconcile(slice(1800, a))
			Expect(plan.Create[0].From).To(Equal(Attrs{}))
			Expect(plan.Create[0].To.R).To(BeNumerically("~", 5, 1e-9))

			r.Advance(100 * time.Millisecond)
			g, _ := r.Glyph("A")
			Expect(g.Current().R).To(BeNumerically("~", 2.5, 1e-9))
		})
	})

	Context("with cubic easing", func() {
		BeforeEach(func() {
			r = NewReconciler(reg, WithEase(EaseCubicInOut))
		})

		It("eases the first quarter slower than linear", func() {
			r.Reconcile(slice(1800, a))
			next := a
			next.Longevity = 90
			r.Reconcile(slice(1801, next))
			r.Advance(DefaultTransition / 4)

			g, _ := r.Glyph("A")
			from, to := reg.Y.Map(30), reg.Y.Map(90)
			linear := from + (to-from)*0.25
			Expect(math.Abs(g.Current().Y - from)).To(BeNumerically("<", math.Abs(linear-from)))
		})
	})
})
