package inmemory_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/marksort/pkg/bookmark"
	"github.com/papercomputeco/marksort/pkg/treestore"
	"github.com/papercomputeco/marksort/pkg/treestore/inmemory"
)

func sampleTree() *bookmark.Node {
	return bookmark.NewFolder(bookmark.RootID, "",
		bookmark.NewFolder("1", "Bookmarks bar",
			bookmark.NewLeaf("a", "A", "https://a.invalid"),
			bookmark.NewLeaf("b", "B", "https://b.invalid"),
			bookmark.NewLeaf("c", "C", "https://c.invalid"),
			bookmark.NewFolder("f", "Folder",
				bookmark.NewLeaf("d", "D", "https://d.invalid"),
			),
		),
		bookmark.NewFolder("2", "Other bookmarks"),
	)
}

var _ = Describe("Store", func() {
	var (
		store *inmemory.Store
		ctx   context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = inmemory.NewStore(sampleTree())
	})

	It("implements treestore.Store", func() {
		var _ treestore.Store = store
	})

	Describe("FetchTree", func() {
		It("returns a snapshot unaffected by later moves", func() {
			before, err := store.FetchTree(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(store.Move(ctx, "c", 0)).To(Succeed())

			Expect(before.Find("1").ChildIDs()).To(Equal([]string{"a", "b", "c", "f"}))

			after, err := store.FetchTree(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(after.Find("1").ChildIDs()).To(Equal([]string{"c", "a", "b", "f"}))
		})

		It("does not share nodes with the seed tree", func() {
			seed := sampleTree()
			s := inmemory.NewStore(seed)
			seed.Find("1").Children = nil

			tree, err := s.FetchTree(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(tree.Find("1").Children).To(HaveLen(4))
		})
	})

	Describe("Move", func() {
		It("moves a node toward the front", func() {
			Expect(store.Move(ctx, "c", 1)).To(Succeed())

			tree, _ := store.FetchTree(ctx)
			Expect(tree.Find("1").ChildIDs()).To(Equal([]string{"a", "c", "b", "f"}))
			Expect(store.Moves()).To(Equal(1))
		})

		It("interprets the index after removal when moving toward the back", func() {
			Expect(store.Move(ctx, "a", 2)).To(Succeed())

			tree, _ := store.FetchTree(ctx)
			Expect(tree.Find("1").ChildIDs()).To(Equal([]string{"b", "c", "a", "f"}))
		})

		It("moves nodes inside nested folders", func() {
			Expect(store.Move(ctx, "d", 0)).To(Succeed())

			tree, _ := store.FetchTree(ctx)
			Expect(tree.Find("f").ChildIDs()).To(Equal([]string{"d"}))
		})

		It("returns NotFoundError for an unknown id", func() {
			err := store.Move(ctx, "missing", 0)

			var nf treestore.NotFoundError
			Expect(errors.As(err, &nf)).To(BeTrue())
			Expect(nf.ID).To(Equal("missing"))
			Expect(store.Moves()).To(Equal(0))
		})

		It("refuses to move permanent root folders", func() {
			Expect(store.Move(ctx, "2", 0)).To(MatchError(treestore.ErrRootChild))
		})

		It("rejects an out of range index", func() {
			err := store.Move(ctx, "a", 4)

			var ie treestore.IndexError
			Expect(errors.As(err, &ie)).To(BeTrue())
			Expect(ie.Len).To(Equal(3))

			tree, _ := store.FetchTree(ctx)
			Expect(tree.Find("1").ChildIDs()).To(Equal([]string{"a", "b", "c", "f"}))
		})
	})
})
