package cards_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mkarlsen/cardpress/internal/cards"
	"github.com/mkarlsen/cardpress/pkg/logger"
	"github.com/mkarlsen/cardpress/pkg/models"
)

func cardsTestLogger() *logger.Logger {
	return logger.New(
		logger.WithOutput(GinkgoWriter),
		logger.WithPrefix("[cards-test] "),
		logger.WithFlags(0),
	)
}

// memLister is an in-memory Lister so pairing logic can be exercised
// without touching the filesystem.
type memLister struct {
	images  map[string][]string
	subdirs map[string][]string
	files   map[string]bool
}

func (m memLister) ListImages(root string) ([]string, error) {
	imgs, ok := m.images[root]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return append([]string(nil), imgs...), nil
}

func (m memLister) ListSubdirs(root string) ([]string, error) {
	dirs, ok := m.subdirs[root]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return append([]string(nil), dirs...), nil
}

func (m memLister) Exists(path string) bool {
	return m.files[path]
}

var _ = Describe("DirLister", func() {
	var testDir string

	BeforeEach(func() {
		var err error
		testDir, err = os.MkdirTemp("", "cards-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(testDir)
	})

	It("lists qualifying images sorted by filename", func() {
		for _, name := range []string{"c.jpeg", "a.png", "b.jpg", "notes.txt", "d.gif"} {
			Expect(os.WriteFile(filepath.Join(testDir, name), []byte("img"), 0644)).To(Succeed())
		}

		images, err := cards.NewDirLister().ListImages(testDir)
		Expect(err).NotTo(HaveOccurred())

		var names []string
		for _, img := range images {
			names = append(names, filepath.Base(img))
		}
		Expect(names).To(Equal([]string{"a.png", "b.jpg", "c.jpeg"}))
	})

	It("matches extensions case-insensitively", func() {
		Expect(os.WriteFile(filepath.Join(testDir, "SHOUT.PNG"), []byte("img"), 0644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(testDir, "Mixed.Jpg"), []byte("img"), 0644)).To(Succeed())

		images, err := cards.NewDirLister().ListImages(testDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(images).To(HaveLen(2))
	})

	It("skips subdirectories when listing images", func() {
		Expect(os.MkdirAll(filepath.Join(testDir, "sub.png"), 0755)).To(Succeed())

		images, err := cards.NewDirLister().ListImages(testDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(images).To(BeEmpty())
	})

	It("reports missing roots as fs.ErrNotExist", func() {
		_, err := cards.NewDirLister().ListImages(filepath.Join(testDir, "nope"))
		Expect(err).To(MatchError(fs.ErrNotExist))
	})
})

var _ = Describe("Collector", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("single-backface collection", func() {
		It("pairs every front with the shared backface in listing order", func() {
			lister := memLister{
				images: map[string][]string{"normal": {"normal/A.png", "normal/B.png", "normal/C.png"}},
				files:  map[string]bool{"backface.jpg": true},
			}
			c := cards.NewCollector(lister, cardsTestLogger())

			pairs, err := c.CollectSingleBackface(ctx, "normal", "backface.jpg")
			Expect(err).NotTo(HaveOccurred())
			Expect(pairs).To(Equal([]models.CardPair{
				{Front: "normal/A.png", Back: "backface.jpg"},
				{Front: "normal/B.png", Back: "backface.jpg"},
				{Front: "normal/C.png", Back: "backface.jpg"},
			}))
		})

		It("contributes zero cards when the backface is missing", func() {
			lister := memLister{
				images: map[string][]string{"normal": {"normal/A.png"}},
				files:  map[string]bool{},
			}
			c := cards.NewCollector(lister, cardsTestLogger())

			pairs, err := c.CollectSingleBackface(ctx, "normal", "backface.jpg")
			Expect(err).NotTo(HaveOccurred())
			Expect(pairs).To(BeEmpty())
		})

		It("contributes zero cards when the directory is missing", func() {
			lister := memLister{
				images: map[string][]string{},
				files:  map[string]bool{"backface.jpg": true},
			}
			c := cards.NewCollector(lister, cardsTestLogger())

			pairs, err := c.CollectSingleBackface(ctx, "normal", "backface.jpg")
			Expect(err).NotTo(HaveOccurred())
			Expect(pairs).To(BeEmpty())
		})
	})

	Describe("double-faced collection", func() {
		It("pairs images consecutively and drops an odd trailing image", func() {
			lister := memLister{
				subdirs: map[string][]string{"double": {"double/set1"}},
				images: map[string][]string{
					"double/set1": {"f1.png", "f2.png", "f3.png", "f4.png", "f5.png"},
				},
			}
			c := cards.NewCollector(lister, cardsTestLogger())

			pairs, err := c.CollectDoubleFaced(ctx, "double")
			Expect(err).NotTo(HaveOccurred())
			Expect(pairs).To(Equal([]models.CardPair{
				{Front: "f1.png", Back: "f2.png"},
				{Front: "f3.png", Back: "f4.png"},
			}))
		})

		It("walks subdirectories in sorted order", func() {
			lister := memLister{
				subdirs: map[string][]string{"double": {"double/alpha", "double/beta"}},
				images: map[string][]string{
					"double/alpha": {"a1.png", "a2.png"},
					"double/beta":  {"b1.png", "b2.png"},
				},
			}
			c := cards.NewCollector(lister, cardsTestLogger())

			pairs, err := c.CollectDoubleFaced(ctx, "double")
			Expect(err).NotTo(HaveOccurred())
			Expect(pairs).To(Equal([]models.CardPair{
				{Front: "a1.png", Back: "a2.png"},
				{Front: "b1.png", Back: "b2.png"},
			}))
		})

		It("returns an empty list when the root does not exist", func() {
			c := cards.NewCollector(memLister{}, cardsTestLogger())

			pairs, err := c.CollectDoubleFaced(ctx, "double")
			Expect(err).NotTo(HaveOccurred())
			Expect(pairs).To(BeEmpty())
		})

		It("stops when the context is cancelled", func() {
			lister := memLister{
				subdirs: map[string][]string{"double": {"double/set1"}},
				images:  map[string][]string{"double/set1": {"f1.png", "f2.png"}},
			}
			c := cards.NewCollector(lister, cardsTestLogger())

			cancelled, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := c.CollectDoubleFaced(cancelled, "double")
			Expect(err).To(Equal(context.Canceled))
		})
	})

	Describe("merging", func() {
		It("keeps single-backface cards ahead of double-faced cards", func() {
			single := []models.CardPair{{Front: "s1", Back: "x"}, {Front: "s2", Back: "x"}}
			double := []models.CardPair{{Front: "d1f", Back: "d1b"}}

			merged := cards.Merge(single, double)
			Expect(merged).To(Equal([]models.CardPair{
				{Front: "s1", Back: "x"},
				{Front: "s2", Back: "x"},
				{Front: "d1f", Back: "d1b"},
			}))
		})

		It("is deterministic against the real filesystem", func() {
			testDir, err := os.MkdirTemp("", "cards-merge-test-*")
			Expect(err).NotTo(HaveOccurred())
			defer os.RemoveAll(testDir)

			normal := filepath.Join(testDir, "normal")
			Expect(os.MkdirAll(normal, 0755)).To(Succeed())
			backface := filepath.Join(testDir, "backface.jpg")
			Expect(os.WriteFile(backface, []byte("img"), 0644)).To(Succeed())
			for _, name := range []string{"02.png", "01.png", "03.png"} {
				Expect(os.WriteFile(filepath.Join(normal, name), []byte("img"), 0644)).To(Succeed())
			}

			c := cards.NewCollector(cards.NewDirLister(), cardsTestLogger())

			first, err := c.CollectSingleBackface(ctx, normal, backface)
			Expect(err).NotTo(HaveOccurred())
			second, err := c.CollectSingleBackface(ctx, normal, backface)
			Expect(err).NotTo(HaveOccurred())

			Expect(first).To(Equal(second))
			Expect(filepath.Base(first[0].Front)).To(Equal("01.png"))
			Expect(filepath.Base(first[2].Front)).To(Equal("03.png"))
		})
	})
})
