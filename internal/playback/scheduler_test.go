package playback

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gapsim/internal/dataset"
	"github.com/san-kum/gapsim/internal/gaperr"
	"github.com/san-kum/gapsim/internal/scale"
	"github.com/san-kum/gapsim/internal/scene"
)

// years builds n slices; slice i holds one entity named after its index.
func years(n int) []dataset.Slice {
	out := make([]dataset.Slice, n)
	for i := range out {
		out[i] = dataset.Slice{
			Year: 1800 + i,
			Records: []dataset.Record{
				{ID: "fixed", Wealth: 1000 + float64(i), Longevity: 30, Population: 2000},
				{ID: fmt.Sprintf("e%d", i), Wealth: 500, Longevity: 40, Population: 2000},
			},
		}
	}
	return out
}

type recorder struct {
	frames []Frame
}

func (r *recorder) OnFrame(f Frame) { r.frames = append(r.frames, f) }

var _ = Describe("Scheduler", func() {
	var (
		rec *scene.Reconciler
		obs *recorder
	)

	BeforeEach(func() {
		rec = scene.NewReconciler(scale.NewRegistry(scale.DefaultParams()))
		obs = &recorder{}
	})

	It("starts idle", func() {
		s := New(years(3), rec)
		Expect(s.Phase()).To(Equal(Idle))
		Expect(s.State()).To(Equal(State{Frame: 0, Total: 3}))

		_, err := s.Step()
		Expect(err).To(MatchError(gaperr.ErrNotRunning))
	})

	It("renders frame zero on start", func() {
		s := New(years(3), rec)
		s.AddObserver(obs)

		f, err := s.Start()
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Phase()).To(Equal(Running))
		Expect(f.Index).To(Equal(0))
		Expect(f.Year).To(Equal(1800))
		Expect(f.Plan.Create).To(HaveLen(2))
		Expect(obs.frames).To(HaveLen(1))
		Expect(rec.Len()).To(Equal(2))
	})

	It("ignores a second start", func() {
		s := New(years(3), rec)
		s.AddObserver(obs)
		_, _ = s.Start()
		_, _ = s.Step()
		_, err := s.Start()

		Expect(err).NotTo(HaveOccurred())
		Expect(s.State().Frame).To(Equal(1))
		Expect(obs.frames).To(HaveLen(2))
	})

	It("never starts without data", func() {
		s := New(nil, rec)
		s.AddObserver(obs)

		_, err := s.Start()
		Expect(err).To(MatchError(gaperr.ErrNoData))
		Expect(s.Phase()).To(Equal(Idle))
		Expect(obs.frames).To(BeEmpty())
	})

	It("wraps from the last index to zero and dispatches slice zero", func() {
		slices := years(215)
		s := New(slices, rec)
		s.AddObserver(obs)
		_, _ = s.Start()

		for i := 0; i < 214; i++ {
			_, err := s.Step()
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(s.State()).To(Equal(State{Frame: 214, Total: 215}))
		Expect(s.Year()).To(Equal(2014))

		f, err := s.Step()
		Expect(err).NotTo(HaveOccurred())
		Expect(s.State().Frame).To(Equal(0))
		Expect(f.Year).To(Equal(1800))
		Expect(f.Slice.Year).To(Equal(slices[0].Year))
		Expect(f.Plan.Remove).To(Equal([]string{"e214"}))
		Expect(f.Plan.Create[0].ID).To(Equal("e0"))
	})

	It("caps playback at the configured frame count", func() {
		s := New(years(10), rec, WithMaxFrames(4), WithStartYear(1900))
		_, _ = s.Start()

		var got []int
		for i := 0; i < 5; i++ {
			f, _ := s.Step()
			got = append(got, f.Year)
		}
		Expect(got).To(Equal([]int{1901, 1902, 1903, 1900, 1901}))
	})

	It("dispatches frames strictly in order", func() {
		s := New(years(5), rec)
		s.AddObserver(obs)
		_, _ = s.Start()
		for i := 0; i < 7; i++ {
			_, _ = s.Step()
		}

		var idx []int
		for _, f := range obs.frames {
			idx = append(idx, f.Index)
		}
		Expect(idx).To(Equal([]int{0, 1, 2, 3, 4, 0, 1, 2}))
	})

	It("keeps the persistent entity as a single glyph across frames", func() {
		s := New(years(3), rec)
		s.AddObserver(obs)
		_, _ = s.Start()
		f, _ := s.Step()

		Expect(f.Plan.Update).To(HaveLen(1))
		Expect(f.Plan.Update[0].ID).To(Equal("fixed"))
		Expect(f.Plan.Remove).To(Equal([]string{"e0"}))
	})
})
