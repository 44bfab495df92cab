package section

import (
	"context"
	"math"
	"runtime"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/quakelab/seissect/internal/geodesy"
	"github.com/quakelab/seissect/internal/geometry"
	"github.com/quakelab/seissect/internal/model"
)

// assignment records the per-event outcome of the candidate search.
// Events are mutually independent, so workers fill disjoint slice ranges
// and the merge stays deterministic regardless of execution order.
type assignment struct {
	ok      bool
	section int
	alongKM float64
	perpKM  float64
}

// Assign classifies every event against every section and groups the
// qualifying events by section index. Each event lands in at most one
// section: among candidate sections it goes to the one with the smallest
// |perpendicular| distance, ties broken by the smaller index. Events with
// no candidate section are dropped. Within each group the original input
// order is preserved.
func Assign(ctx context.Context, events []model.Event, set model.SectionSet) (map[int][]model.ProjectedEvent, error) {
	out := make(map[int][]model.ProjectedEvent, len(set.Sections))
	for _, s := range set.Sections {
		out[s.Index] = nil
	}
	if len(events) == 0 || len(set.Sections) == 0 {
		return out, nil
	}

	// Fail-fast validation of the whole batch before projecting anything.
	for i, ev := range events {
		if err := validateEvent(ev); err != nil {
			return nil, eris.Wrapf(err, "section: event %d", i)
		}
	}

	// km per planar unit, so bounds in km compare against projected output.
	toKM := 1.0
	if set.Unit == model.UnitMeters {
		toKM = 1.0 / 1000.0
	}

	decisions := make([]assignment, len(events))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(events) {
		workers = len(events)
	}
	chunk := (len(events) + workers - 1) / workers

	g, _ := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(events) {
			hi = len(events)
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				d, err := classify(events[i], set, toKM)
				if err != nil {
					return err
				}
				decisions[i] = d
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Deterministic merge in input order.
	dropped := 0
	for i, ev := range events {
		d := decisions[i]
		if !d.ok {
			dropped++
			continue
		}
		out[d.section] = append(out[d.section], model.ProjectedEvent{
			Event:        ev,
			SectionIndex: d.section,
			AlongKM:      d.alongKM,
			PerpKM:       d.perpKM,
		})
	}

	if dropped > 0 {
		zap.L().Debug("section: events outside all sections dropped",
			zap.Int("dropped", dropped),
			zap.Int("total", len(events)),
		)
	}

	return out, nil
}

// classify projects one event into the set's frame and picks the winning
// section, if any.
func classify(ev model.Event, set model.SectionSet, toKM float64) (assignment, error) {
	p, err := geodesy.ToPlanarFrame(ev.Geographic(), set.Zone, set.North, set.Unit)
	if err != nil {
		return assignment{}, err
	}

	best := assignment{}
	for _, s := range set.Sections {
		along, perp := geometry.ProjectOntoStrike(p, s.Center, s.StrikeDeg)
		along *= toKM
		perp *= toKM

		if math.Abs(along) > s.HalfLengthKM || math.Abs(perp) > s.ToleranceKM {
			continue
		}
		if ev.DepthKM < s.DepthMinKM || ev.DepthKM > s.DepthMaxKM {
			continue
		}

		// Sections iterate index-ascending, so a strict improvement test
		// keeps the lowest index on equal |perp|.
		if !best.ok || math.Abs(perp) < math.Abs(best.perpKM) {
			best = assignment{ok: true, section: s.Index, alongKM: along, perpKM: perp}
		}
	}
	return best, nil
}

func validateEvent(ev model.Event) error {
	if math.IsNaN(ev.DepthKM) || math.IsInf(ev.DepthKM, 0) {
		return eris.Wrap(geodesy.ErrDomain, "section: non-finite event depth")
	}
	return geodesy.ValidatePoint(ev.Geographic())
}
