package sploop_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vliwdbt/guest"
	"github.com/sarchlab/vliwdbt/sploop"
	"github.com/sarchlab/vliwdbt/translation"
)

var _ = Describe("Cache", func() {
	var cache *sploop.Cache

	BeforeEach(func() {
		cache = sploop.NewCache()
	})

	It("should miss on an empty cache", func() {
		_, ok := cache.Lookup(sploop.Key{LoopID: 0, Phase: translation.PhaseProlog})

		Expect(ok).To(BeFalse())
	})

	It("should return the inserted block", func() {
		key := sploop.Key{LoopID: 1, Phase: translation.PhaseKernel}
		tb := &translation.TranslationBlock{ID: 42}

		cache.Insert(key, tb)

		got, ok := cache.Lookup(key)
		Expect(ok).To(BeTrue())
		Expect(got).To(BeIdenticalTo(tb))
	})

	It("should keep the first block inserted for a key", func() {
		key := sploop.Key{LoopID: 1, Phase: translation.PhaseKernel}
		first := &translation.TranslationBlock{ID: 1}
		second := &translation.TranslationBlock{ID: 2}

		cache.Insert(key, first)
		cache.Insert(key, second)

		got, _ := cache.Lookup(key)
		Expect(got).To(BeIdenticalTo(first))
		Expect(cache.Len()).To(Equal(1))
	})

	It("should keep loops with distinct IDs apart in a shared cache", func() {
		builder := translation.NewBuilder()
		d := &recordingDispatcher{}

		first := sploop.NewLoop(guest.PipelinedLoop(), 2, d,
			sploop.WithCache(cache),
			sploop.WithBuilder(builder),
			sploop.WithLoopID(0),
		)
		second := sploop.NewLoop(guest.PipelinedLoop(), 2, d,
			sploop.WithCache(cache),
			sploop.WithBuilder(builder),
			sploop.WithLoopID(1),
		)

		Expect(first.Run()).To(Succeed())
		Expect(second.Run()).To(Succeed())

		// Prolog and kernel per loop instance.
		Expect(cache.Len()).To(Equal(4))

		firstKernel, ok := cache.Lookup(sploop.Key{LoopID: 0, Phase: translation.PhaseKernel})
		Expect(ok).To(BeTrue())
		secondKernel, ok := cache.Lookup(sploop.Key{LoopID: 1, Phase: translation.PhaseKernel})
		Expect(ok).To(BeTrue())
		Expect(firstKernel.ID).NotTo(Equal(secondKernel.ID))
	})
})
