package timeline_test

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/godsim/internal/biology"
	"github.com/san-kum/godsim/internal/dynamo"
	"github.com/san-kum/godsim/internal/physics"
	"github.com/san-kum/godsim/internal/timeline"
	"github.com/san-kum/godsim/internal/world"
)

func initialState() *dynamo.State {
	rng := rand.New(rand.NewPCG(1, 0))
	st, err := dynamo.NewState(dynamo.Setup{
		Grid:        world.Generate(8, 8, 8, rng),
		Physics:     physics.DefaultRules(),
		Ecology:     biology.DefaultParams(),
		Species:     []biology.Species{biology.RandomSpecies(0, rng)},
		Populations: []biology.Population{{SpeciesID: 0, X: 3, Y: 3, Z: 4, Size: 200}},
	})
	Expect(err).NotTo(HaveOccurred())
	return st
}

var _ = Describe("Multiverse", func() {
	var (
		mv  *timeline.Multiverse
		rng *rand.Rand
	)

	BeforeEach(func() {
		mv = timeline.New(initialState())
		rng = rand.New(rand.NewPCG(2, 0))
	})

	It("starts at tick zero with one snapshot", func() {
		Expect(mv.Tick()).To(Equal(0))
		Expect(mv.Len()).To(Equal(1))
		Expect(mv.Timelines()).To(Equal(1))
		Expect(mv.AtEnd()).To(BeTrue())
	})

	Describe("Advance", func() {
		It("appends a new snapshot and moves the cursor onto it", func() {
			first := mv.Current()
			next := mv.Advance(rng)

			Expect(mv.Tick()).To(Equal(1))
			Expect(mv.Len()).To(Equal(2))
			Expect(mv.Current()).To(BeIdenticalTo(next))
			Expect(next).NotTo(BeIdenticalTo(first))
			Expect(next.Tick).To(Equal(1))
		})

		It("never mutates stored snapshots", func() {
			mv.Advance(rng)
			stored := mv.Current().Clone()
			for range 5 {
				mv.Advance(rng)
			}
			s, err := mv.At(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Populations).To(Equal(stored.Populations))
			Expect(s.Grid.Voxels()).To(Equal(stored.Grid.Voxels()))
		})
	})

	Describe("Rewind", func() {
		BeforeEach(func() {
			for range 5 {
				mv.Advance(rng)
			}
		})

		It("moves the cursor without touching history", func() {
			Expect(mv.Rewind(2)).To(Equal(3))
			Expect(mv.Len()).To(Equal(6))
			Expect(mv.Current().Tick).To(Equal(3))
			Expect(mv.AtEnd()).To(BeFalse())
		})

		It("clamps at zero", func() {
			Expect(mv.Rewind(100)).To(Equal(0))
			Expect(mv.Rewind(-3)).To(Equal(0))
		})

		It("can be undone with Forward up to the last stored tick", func() {
			mv.Rewind(4)
			Expect(mv.Forward(1)).To(Equal(2))
			Expect(mv.Forward(10)).To(Equal(5))
			Expect(mv.AtEnd()).To(BeTrue())
		})

		Context("followed by a push", func() {
			It("discards the rewound future and keeps earlier snapshots", func() {
				early, err := mv.At(2)
				Expect(err).NotTo(HaveOccurred())
				discarded := mv.Current()

				mv.Rewind(3)
				next := mv.Advance(rng)

				Expect(mv.Tick()).To(Equal(3))
				Expect(mv.Len()).To(Equal(mv.Tick() + 1))
				Expect(mv.Current()).To(BeIdenticalTo(next))
				Expect(next.Tick).To(Equal(3))

				again, err := mv.At(2)
				Expect(err).NotTo(HaveOccurred())
				Expect(again).To(BeIdenticalTo(early))

				_, err = mv.At(5)
				Expect(err).To(MatchError(timeline.ErrNoSuchTick))
				for i := range mv.Len() {
					s, _ := mv.At(i)
					Expect(s).NotTo(BeIdenticalTo(discarded))
				}
			})
		})
	})

	Describe("At", func() {
		It("rejects negative and future ticks", func() {
			_, err := mv.At(-1)
			Expect(err).To(MatchError(timeline.ErrNoSuchTick))
			_, err = mv.At(1)
			Expect(err).To(MatchError(timeline.ErrNoSuchTick))
		})
	})

	Describe("NewBounded", func() {
		It("keeps only the newest snapshots with absolute ticks", func() {
			bounded := timeline.NewBounded(initialState(), 2)
			var last *dynamo.State
			for range 5 {
				last = bounded.Advance(rng)
			}

			Expect(bounded.Tick()).To(Equal(5))
			Expect(bounded.Len()).To(Equal(6))
			Expect(bounded.Stored()).To(Equal(2))
			Expect(bounded.Timeline().Oldest()).To(Equal(4))
			Expect(bounded.Current()).To(BeIdenticalTo(last))
			Expect(last.Tick).To(Equal(5))

			prev, err := bounded.At(4)
			Expect(err).NotTo(HaveOccurred())
			Expect(prev.Tick).To(Equal(4))
			_, err = bounded.At(3)
			Expect(err).To(MatchError(timeline.ErrNoSuchTick))
		})

		It("rewinds no further than the oldest stored snapshot", func() {
			bounded := timeline.NewBounded(initialState(), 1)
			for range 3 {
				bounded.Advance(rng)
			}
			Expect(bounded.Rewind(10)).To(Equal(3))
			Expect(bounded.AtEnd()).To(BeTrue())
		})
	})
})
