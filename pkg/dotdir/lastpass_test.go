package dotdir_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/marksort/pkg/dotdir"
)

var _ = Describe("dotdir.Manager last pass", func() {
	var tmpDir string
	var m *dotdir.Manager

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		m = dotdir.NewManager()
	})

	It("returns nil when no pass was recorded", func() {
		pass, err := m.LoadLastPass(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(pass).To(BeNil())
	})

	It("round trips a pass summary", func() {
		finished := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		Expect(m.SaveLastPass(&dotdir.LastPass{
			FinishedAt: finished,
			Folders:    3,
			Moves:      5,
			Suppressed: 1,
		}, tmpDir)).To(Succeed())

		pass, err := m.LoadLastPass(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(pass.FinishedAt.Equal(finished)).To(BeTrue())
		Expect(pass.Folders).To(Equal(3))
		Expect(pass.Moves).To(Equal(5))
		Expect(pass.Suppressed).To(Equal(1))
		Expect(pass.DryRun).To(BeFalse())
	})

	It("returns error for invalid JSON", func() {
		Expect(os.WriteFile(filepath.Join(tmpDir, "last_pass.json"), []byte("not json"), 0o600)).To(Succeed())

		pass, err := m.LoadLastPass(tmpDir)
		Expect(err).To(HaveOccurred())
		Expect(pass).To(BeNil())
	})

	It("refuses a nil pass", func() {
		Expect(m.SaveLastPass(nil, tmpDir)).NotTo(Succeed())
	})
})
