package level

import (
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/triangulate"
)

// holes returns the outlines of children of s that overlap its outline.
func (w *World) holes(s *Sector) [][]geom.Vec2 {
	var holes [][]geom.Vec2
	for _, c := range w.Children(s.ID) {
		if !c.IsValid() {
			continue
		}
		for _, v := range c.Vertices {
			if geom.PointInPolygon(v, s.Vertices) {
				holes = append(holes, slices.Clone(c.Vertices))
				break
			}
		}
	}
	return holes
}

// Triangulate splits a sector into triangles, cutting out its nested
// children.
func (w *World) Triangulate(id SectorID) []triangulate.Triangle {
	s, ok := w.sectors[id]
	if !ok || !s.IsValid() {
		return nil
	}
	return triangulate.Triangulate(s.Vertices, w.holes(s))
}

type triangulateJob struct {
	id    SectorID
	outer []geom.Vec2
	holes [][]geom.Vec2
}

// TriangulateAll triangulates every closed sector in parallel. Outlines
// are copied before the workers start, so the world may be read again
// once it returns.
func (w *World) TriangulateAll(ctx context.Context) (map[SectorID][]triangulate.Triangle, error) {
	var jobs []triangulateJob
	for _, s := range w.ClosedSectors() {
		jobs = append(jobs, triangulateJob{id: s.ID, outer: slices.Clone(s.Vertices), holes: w.holes(s)})
	}

	results := make([][]triangulate.Triangle, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = triangulate.Triangulate(job.outer, job.holes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[SectorID][]triangulate.Triangle, len(jobs))
	for i, job := range jobs {
		out[job.id] = results[i]
	}
	return out, nil
}
