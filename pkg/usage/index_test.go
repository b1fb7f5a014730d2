package usage_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/marksort/pkg/bookmark"
	"github.com/papercomputeco/marksort/pkg/usage"
)

var _ = Describe("Index", func() {
	var idx *usage.Index

	BeforeEach(func() {
		idx = usage.NewIndex(bookmark.NewFolder(bookmark.RootID, "",
			bookmark.NewFolder("1", "Bar",
				bookmark.NewLeaf("a", "A", "https://example.invalid/a"),
				bookmark.NewLeaf("b", "B", "https://example.invalid/a/b"),
				bookmark.NewLeaf("c", "C", "https://other.invalid/"),
				bookmark.NewLeaf("dup", "Dup", "https://example.invalid/a"),
				bookmark.NewFolder("f", "Folder",
					bookmark.NewLeaf("d", "D", "https://www.nested.invalid/x"),
				),
				bookmark.NewLeaf("bare", "Bare", "https://bare.invalid"),
				bookmark.NewLeaf("noscheme", "No scheme", "loose.invalid/p"),
			),
		))
	})

	It("counts distinct identities", func() {
		Expect(idx.Len()).To(Equal(6))
	})

	It("returns every matching identity once", func() {
		Expect(idx.Match("https://www.example.invalid/a/b/c")).To(ConsistOf(
			"https://example.invalid/a",
			"https://example.invalid/a/b",
		))
	})

	It("finds identities in nested folders", func() {
		Expect(idx.Match("http://nested.invalid/x?q=1")).To(ConsistOf("https://www.nested.invalid/x"))
	})

	It("matches nothing on an unrelated host", func() {
		Expect(idx.Match("https://unrelated.invalid/a")).To(BeEmpty())
	})

	It("matches nothing for malformed visits", func() {
		Expect(idx.Match("not a url")).To(BeNil())
		Expect(idx.Match("example.invalid/a")).To(BeNil())
		Expect(idx.Match("")).To(BeNil())
	})

	It("lets bare hosts prefix-match longer hostnames", func() {
		Expect(idx.Match("https://bare.invalid.example/")).To(ConsistOf("https://bare.invalid"))
	})

	It("checks identities that are not URLs against every visit", func() {
		Expect(idx.Match("https://loose.invalid/p/q")).To(ConsistOf("loose.invalid/p"))
	})

	It("handles a nil root", func() {
		Expect(usage.NewIndex(nil).Len()).To(Equal(0))
	})
})
