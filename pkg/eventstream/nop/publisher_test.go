package nop_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/marksort/pkg/eventstream"
	"github.com/papercomputeco/marksort/pkg/eventstream/nop"
)

var _ = Describe("Publisher", func() {
	var p *nop.Publisher

	BeforeEach(func() {
		p = nop.NewPublisher()
	})

	It("implements eventstream.Publisher", func() {
		var _ eventstream.Publisher = p
	})

	It("returns ErrNilEvent for nil events", func() {
		Expect(p.PublishReorder(context.Background(), nil)).To(MatchError(eventstream.ErrNilEvent))
		Expect(p.PublishVisit(context.Background(), nil)).To(MatchError(eventstream.ErrNilEvent))
	})

	It("succeeds for non-nil events", func() {
		Expect(p.PublishReorder(context.Background(), &eventstream.ReorderCompletedEvent{})).To(Succeed())
		Expect(p.PublishVisit(context.Background(), &eventstream.VisitRecordedEvent{})).To(Succeed())
	})

	It("closes successfully", func() {
		Expect(p.Close()).To(Succeed())
	})
})
