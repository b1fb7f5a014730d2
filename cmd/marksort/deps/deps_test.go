package deps_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/marksort/cmd/marksort/deps"
	"github.com/papercomputeco/marksort/pkg/config"
	"github.com/papercomputeco/marksort/pkg/eventstream/nop"
	kvinmemory "github.com/papercomputeco/marksort/pkg/kv/inmemory"
	"github.com/papercomputeco/marksort/pkg/logger"
	"github.com/papercomputeco/marksort/pkg/treestore/chrome"
	treeinmemory "github.com/papercomputeco/marksort/pkg/treestore/inmemory"
)

const emptyBookmarks = `{
   "roots": {
      "bookmark_bar": {"children": [], "id": "1", "name": "Bookmarks bar", "type": "folder"},
      "other": {"children": [], "id": "2", "name": "Other bookmarks", "type": "folder"},
      "synced": {"children": [], "id": "3", "name": "Mobile bookmarks", "type": "folder"}
   },
   "version": 1
}`

var _ = Describe("deps", func() {
	var (
		ctx       context.Context
		configDir string
	)

	BeforeEach(func() {
		ctx = context.Background()
		configDir = GinkgoT().TempDir()
		GinkgoT().Setenv("XDG_DATA_HOME", "")
	})

	Describe("OpenKV", func() {
		It("opens the in-memory driver", func() {
			d, err := deps.OpenKV(ctx, config.StorageConfig{Provider: "memory"}, configDir, logger.Nop())
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(BeAssignableToTypeOf(&kvinmemory.Driver{}))
		})

		It("creates the default SQLite database in the config dir", func() {
			d, err := deps.OpenKV(ctx, config.StorageConfig{Provider: "sqlite"}, configDir, logger.Nop())
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(d.Close)

			_, err = os.Stat(filepath.Join(configDir, "marksort.sqlite"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("requires a DSN for postgres", func() {
			_, err := deps.OpenKV(ctx, config.StorageConfig{Provider: "postgres"}, configDir, logger.Nop())
			Expect(err).To(MatchError(ContainSubstring("postgres_dsn")))
		})

		It("rejects unknown providers", func() {
			_, err := deps.OpenKV(ctx, config.StorageConfig{Provider: "redis"}, configDir, logger.Nop())
			Expect(err).To(MatchError(ContainSubstring("unknown storage provider")))
		})
	})

	Describe("OpenTree", func() {
		It("opens an empty in-memory tree", func() {
			store, err := deps.OpenTree(config.TreeConfig{Provider: "memory"}, logger.Nop())
			Expect(err).NotTo(HaveOccurred())
			Expect(store).To(BeAssignableToTypeOf(&treeinmemory.Store{}))

			root, err := store.FetchTree(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(root.ChildIDs()).To(Equal([]string{"1", "2"}))
		})

		It("opens a Chrome bookmarks file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "Bookmarks")
			Expect(os.WriteFile(path, []byte(emptyBookmarks), 0o600)).To(Succeed())

			store, err := deps.OpenTree(config.TreeConfig{Provider: "chrome", BookmarksPath: path}, logger.Nop())
			Expect(err).NotTo(HaveOccurred())
			Expect(store).To(BeAssignableToTypeOf(&chrome.Store{}))
		})

		It("fails when the bookmarks file is missing", func() {
			_, err := deps.OpenTree(config.TreeConfig{
				Provider:      "chrome",
				BookmarksPath: filepath.Join(GinkgoT().TempDir(), "missing"),
			}, logger.Nop())
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("OpenPublisher", func() {
		It("defaults to the no-op publisher", func() {
			p, err := deps.OpenPublisher(config.EventsConfig{Provider: "none"})
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(BeAssignableToTypeOf(&nop.Publisher{}))
		})

		It("requires brokers for kafka", func() {
			_, err := deps.OpenPublisher(config.EventsConfig{Provider: "kafka", KafkaTopic: "events"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("VisitSources", func() {
		It("returns nothing when no source is configured", func() {
			sources, err := deps.VisitSources(config.VisitsConfig{}, logger.Nop())
			Expect(err).NotTo(HaveOccurred())
			Expect(sources).To(BeEmpty())
		})

		It("opens the log tail and kafka sources", func() {
			sources, err := deps.VisitSources(config.VisitsConfig{
				LogPath:      filepath.Join(GinkgoT().TempDir(), "visits.jsonl"),
				KafkaBrokers: "localhost:9092",
				KafkaTopic:   "visits",
			}, logger.Nop())
			Expect(err).NotTo(HaveOccurred())
			Expect(sources).To(HaveLen(2))
			for _, s := range sources {
				Expect(s.Close()).To(Succeed())
			}
		})
	})

	Describe("Open", func() {
		It("builds a working service over in-memory providers", func() {
			cfg := config.NewDefaultConfig()
			cfg.Storage.Provider = "memory"
			cfg.Tree.Provider = "memory"

			stack, err := deps.Open(ctx, cfg, configDir, logger.Nop())
			Expect(err).NotTo(HaveOccurred())

			svc, err := stack.NewService()
			Expect(err).NotTo(HaveOccurred())

			report, err := svc.PlanReorder(ctx, cfg.Policy.ReorderPolicy())
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Moves).To(BeEmpty())

			svc.Close()
			Expect(stack.Close()).To(Succeed())
		})
	})

	Describe("NewLogger", func() {
		It("copies records to the log file as JSON", func() {
			path := filepath.Join(GinkgoT().TempDir(), "marksort.log")

			l, closeFn, err := deps.NewLogger(false, path)
			Expect(err).NotTo(HaveOccurred())
			l.Info("reorder finished", "moves", 3)
			Expect(closeFn()).To(Succeed())

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring(`"msg":"reorder finished"`))
			Expect(string(data)).To(ContainSubstring(`"moves":3`))
		})

		It("reports callers and debug records with debug on", func() {
			path := filepath.Join(GinkgoT().TempDir(), "marksort.log")

			l, closeFn, err := deps.NewLogger(true, path)
			Expect(err).NotTo(HaveOccurred())
			l.Debug("index refreshed")
			Expect(closeFn()).To(Succeed())

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring(`"msg":"index refreshed"`))
			Expect(string(data)).To(ContainSubstring(`"source":`))
		})
	})
})
