// Package cards turns the on-disk card collections into the ordered list
// of front/back pairs that drives sheet assignment.
package cards

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/mkarlsen/cardpress/pkg/logger"
	"github.com/mkarlsen/cardpress/pkg/models"
)

type Collector struct {
	lister Lister
	log    *logger.Logger
}

func NewCollector(lister Lister, log *logger.Logger) *Collector {
	return &Collector{
		lister: lister,
		log:    log,
	}
}

// CollectSingleBackface pairs every qualifying image under root with the
// shared backface image. A missing backface or missing root contributes
// zero cards; neither is an error.
func (c *Collector) CollectSingleBackface(ctx context.Context, root, backfacePath string) ([]models.CardPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !c.lister.Exists(backfacePath) {
		c.log.Warn("backface image not found: %s", backfacePath)
		return nil, nil
	}

	images, err := c.lister.ListImages(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.log.Debug("normal card directory not found: %s", root)
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}

	pairs := make([]models.CardPair, 0, len(images))
	for _, front := range images {
		pairs = append(pairs, models.CardPair{Front: front, Back: backfacePath})
	}
	return pairs, nil
}

// CollectDoubleFaced walks the immediate subdirectories of root and pairs
// each one's images consecutively in listing order: first of each pair is
// the front, second the back. A trailing unpaired image is dropped.
func (c *Collector) CollectDoubleFaced(ctx context.Context, root string) ([]models.CardPair, error) {
	subdirs, err := c.lister.ListSubdirs(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.log.Debug("double-faced card directory not found: %s", root)
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}

	var pairs []models.CardPair
	for _, sub := range subdirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		images, err := c.lister.ListImages(sub)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", sub, err)
		}

		for i := 0; i+1 < len(images); i += 2 {
			pairs = append(pairs, models.CardPair{Front: images[i], Back: images[i+1]})
		}
		if len(images)%2 != 0 {
			c.log.Debug("dropping unpaired image in %s: %s", sub, images[len(images)-1])
		}
	}
	return pairs, nil
}

// Merge concatenates the two collections, single-backface cards first.
// The resulting order defines sheet and slot assignment and must stay
// stable between runs.
func Merge(single, double []models.CardPair) []models.CardPair {
	merged := make([]models.CardPair, 0, len(single)+len(double))
	merged = append(merged, single...)
	merged = append(merged, double...)
	return merged
}
