package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/pptassist/office"
	"github.com/VantageDataChat/pptassist/service"
)

func TestAlignLeftScenario(t *testing.T) {
	for _, f := range fixtures(t, scenarioBoxes) {
		t.Run(f.name, func(t *testing.T) {
			svc := service.NewAlignmentService(f.app, nil)
			shapes := f.all(t, scenarioBoxes)

			out, err := svc.Align(shapes, service.AlignLeft, service.RefSelectedObjects)

			require.NoError(t, err)
			assert.Equal(t, 2, out.Changed)
			assert.True(t, out.Confirmed())
			for _, r := range bounds(shapes) {
				assert.InDelta(t, 10, r.Left, 0.01)
				assert.InDelta(t, 20, r.Top, 0.01)
				assert.InDelta(t, 50, r.Width, 0.01)
			}
		})
	}
}

func TestDistributeScenario(t *testing.T) {
	for _, f := range fixtures(t, scenarioBoxes) {
		t.Run(f.name, func(t *testing.T) {
			svc := service.NewAlignmentService(f.app, nil)
			shapes := f.all(t, scenarioBoxes)

			out, err := svc.Distribute(shapes, service.DistributeHorizontal)

			require.NoError(t, err)
			assert.Equal(t, 1, out.Changed)
			got := bounds(shapes)
			assert.InDelta(t, 10, got[0].Left, 0.01)
			assert.InDelta(t, 255, got[1].Left, 0.01)
			assert.InDelta(t, 500, got[2].Left, 0.01)
		})
	}
}

func TestDistributeKeepsEndpointsAndEqualizesGaps(t *testing.T) {
	boxes := []box{
		{"D", 400, 10, 30, 20},
		{"A", 0, 200, 40, 10},
		{"C", 90, 50, 80, 60},
		{"E", 600, 0, 60, 30},
		{"B", 30, 120, 20, 45},
	}
	for _, f := range fixtures(t, boxes) {
		t.Run(f.name, func(t *testing.T) {
			svc := service.NewAlignmentService(f.app, nil)

			for _, axis := range []service.DistributionType{service.DistributeHorizontal, service.DistributeVertical} {
				shapes := f.all(t, boxes)
				before := bounds(shapes)
				_, err := svc.Distribute(shapes, axis)
				require.NoError(t, err)
				after := bounds(shapes)

				lead := func(r office.ShapeRect) float64 { return r.Left }
				trail := func(r office.ShapeRect) float64 { return r.Right() }
				if axis == service.DistributeVertical {
					lead = func(r office.ShapeRect) float64 { return r.Top }
					trail = func(r office.ShapeRect) float64 { return r.Bottom() }
				}
				order := sortedBy(before, lead)
				first, last := order[0], order[len(order)-1]
				assert.InDelta(t, lead(before[first]), lead(after[first]), 0.01, "first shape moved")
				assert.InDelta(t, lead(before[last]), lead(after[last]), 0.01, "last shape moved")

				gap := lead(after[order[1]]) - trail(after[order[0]])
				for i := 1; i < len(order)-1; i++ {
					next := lead(after[order[i+1]]) - trail(after[order[i]])
					assert.InDelta(t, gap, next, 0.01, "gap %d on %s axis", i, axis)
				}
			}
		})
	}
}

// sortedBy returns indexes of rects ordered by key.
func sortedBy(rects []office.ShapeRect, key func(office.ShapeRect) float64) []int {
	idx := make([]int, len(rects))
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && key(rects[idx[j]]) < key(rects[idx[j-1]]); j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	return idx
}

func TestDistributeNeedsThreeShapes(t *testing.T) {
	for _, f := range fixtures(t, scenarioBoxes) {
		t.Run(f.name, func(t *testing.T) {
			svc := service.NewAlignmentService(f.app, nil)

			_, err := svc.Distribute(f.shapes(t, "Box A", "Box B"), service.DistributeHorizontal)

			require.ErrorIs(t, err, office.ErrTooFewShapes)
			var ce *office.ContractError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, "distribute", ce.Op)
		})
	}
}

func TestAlignIsIdempotent(t *testing.T) {
	for _, f := range fixtures(t, scenarioBoxes) {
		t.Run(f.name, func(t *testing.T) {
			svc := service.NewAlignmentService(f.app, nil)
			shapes := f.all(t, scenarioBoxes)

			_, err := svc.Align(shapes, service.AlignCenter, service.RefSelectedObjects)
			require.NoError(t, err)
			first := bounds(shapes)

			out, err := svc.Align(shapes, service.AlignCenter, service.RefSelectedObjects)
			require.NoError(t, err)
			assert.Zero(t, out.Changed)
			for i, r := range bounds(shapes) {
				assert.True(t, r.ApproxEqual(first[i], 1e-6), "shape %d moved", i)
			}
		})
	}
}

func TestAlignReferences(t *testing.T) {
	boxes := []box{
		{"First", 100, 40, 60, 20},
		{"Second", 300, 90, 40, 50},
		{"Last", 200, 10, 80, 30},
	}
	cases := []struct {
		name  string
		typ   service.AlignmentType
		ref   service.AlignmentReference
		check func(office.ShapeRect) float64
		want  float64
	}{
		{"right of selection", service.AlignRight, service.RefSelectedObjects, office.ShapeRect.Right, 340},
		{"top of first", service.AlignTop, service.RefFirstObject, func(r office.ShapeRect) float64 { return r.Top }, 40},
		{"bottom of last", service.AlignBottom, service.RefLastObject, office.ShapeRect.Bottom, 40},
		{"slide centre", service.AlignCenter, service.RefSlide, office.ShapeRect.CenterX, 360},
		{"slide middle", service.AlignMiddle, service.RefSlide, office.ShapeRect.CenterY, 270},
		{"slide left", service.AlignLeft, service.RefSlide, func(r office.ShapeRect) float64 { return r.Left }, 0},
		{"middle of selection", service.AlignMiddle, service.RefSelectedObjects, office.ShapeRect.CenterY, 75},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, f := range fixtures(t, boxes) {
				svc := service.NewAlignmentService(f.app, nil)
				shapes := f.all(t, boxes)
				before := bounds(shapes)

				_, err := svc.Align(shapes, tc.typ, tc.ref)
				require.NoError(t, err)

				for i, r := range bounds(shapes) {
					assert.InDelta(t, tc.want, tc.check(r), 0.01, "%s shape %d", f.name, i)
					assert.InDelta(t, before[i].Width, r.Width, 0.01)
					assert.InDelta(t, before[i].Height, r.Height, 0.01)
					if tc.typ <= service.AlignRight {
						assert.InDelta(t, before[i].Top, r.Top, 0.01, "vertical position kept")
					} else {
						assert.InDelta(t, before[i].Left, r.Left, 0.01, "horizontal position kept")
					}
				}
			}
		})
	}
}

func TestAlignEmptyAndNil(t *testing.T) {
	for _, f := range fixtures(t, scenarioBoxes) {
		t.Run(f.name, func(t *testing.T) {
			log := &recordLogger{}
			svc := service.NewAlignmentService(f.app, log)

			out, err := svc.Align(nil, service.AlignLeft, service.RefSlide)
			require.NoError(t, err)
			assert.Zero(t, out.Changed)
			assert.Contains(t, log.warns, "nothing to align")

			_, err = svc.Align([]office.Shape{f.shapes(t, "Box A")[0], nil}, service.AlignLeft, service.RefSlide)
			assert.ErrorIs(t, err, office.ErrNilArgument)
		})
	}
}

func TestEqualSizes(t *testing.T) {
	boxes := []box{
		{"A", 10, 10, 50, 30},
		{"B", 100, 10, 80, 40},
		{"C", 200, 10, 30, 20},
	}
	for _, f := range fixtures(t, boxes) {
		t.Run(f.name, func(t *testing.T) {
			svc := service.NewAlignmentService(f.app, nil)
			shapes := f.all(t, boxes)

			_, err := svc.SetEqualWidth(shapes)
			require.NoError(t, err)
			got := bounds(shapes)
			for i, r := range got {
				assert.InDelta(t, 80, r.Width, 0.01)
				assert.InDelta(t, boxes[i].height, r.Height, 0.01, "height unchanged")
				assert.InDelta(t, boxes[i].left, r.Left, 0.01, "position unchanged")
			}

			_, err = svc.SetEqualHeight(shapes)
			require.NoError(t, err)
			for _, r := range bounds(shapes) {
				assert.InDelta(t, 40, r.Height, 0.01)
				assert.InDelta(t, 80, r.Width, 0.01)
			}

			out, err := svc.SetEqualSize(shapes)
			require.NoError(t, err)
			assert.Zero(t, out.Changed, "already equal")
		})
	}
}

func TestSwapTwiceRestores(t *testing.T) {
	boxes := []box{
		{"Small", 10, 10, 40, 20},
		{"Large", 300, 200, 120, 90},
	}
	for _, f := range fixtures(t, boxes) {
		t.Run(f.name, func(t *testing.T) {
			svc := service.NewAlignmentService(f.app, nil)
			shapes := f.all(t, boxes)
			before := bounds(shapes)

			_, err := svc.SwapPositions(shapes[0], shapes[1])
			require.NoError(t, err)
			swapped := bounds(shapes)
			assert.InDelta(t, before[1].CenterX(), swapped[0].CenterX(), 0.01)
			assert.InDelta(t, before[1].CenterY(), swapped[0].CenterY(), 0.01)
			assert.InDelta(t, before[0].CenterX(), swapped[1].CenterX(), 0.01)
			assert.InDelta(t, before[0].Width, swapped[0].Width, 0.01, "size kept")

			_, err = svc.SwapPositions(shapes[0], shapes[1])
			require.NoError(t, err)
			for i, r := range bounds(shapes) {
				assert.True(t, r.ApproxEqual(before[i], 0.01), "shape %d: %+v != %+v", i, r, before[i])
			}

			_, err = svc.SwapPositions(shapes[0], nil)
			assert.ErrorIs(t, err, office.ErrNilArgument)
		})
	}
}

func TestUndoEntriesOnAutomationHost(t *testing.T) {
	f := automationFixture(t, scenarioBoxes, nil)
	svc := service.NewAlignmentService(f.app, nil)

	_, err := svc.Align(f.all(t, scenarioBoxes), service.AlignTop, service.RefSlide)
	require.NoError(t, err)
	_, err = svc.Distribute(f.all(t, scenarioBoxes), service.DistributeHorizontal)
	require.NoError(t, err)

	assert.Equal(t, 2, f.host.UndoEntries())
}

func TestUnconfirmedWriteIsReported(t *testing.T) {
	f := automationFixture(t, scenarioBoxes, nil)
	// the host accepts the write but keeps the old value
	f.host.Shape(1, "Box B").Setter("Left", func(...any) error { return nil })
	log := &recordLogger{}
	svc := service.NewAlignmentService(f.app, log)

	out, err := svc.Align(f.all(t, scenarioBoxes), service.AlignLeft, service.RefSelectedObjects)

	require.NoError(t, err)
	assert.Equal(t, []string{"Box B"}, out.Unconfirmed)
	assert.False(t, out.Confirmed())
	assert.Contains(t, log.warns, "bounds not applied")
}

func TestAlignSelectionPrefersHostCommand(t *testing.T) {
	f := automationFixture(t, scenarioBoxes, []string{"Box A", "Box B", "Box C"})
	f.host.EnableCommand(office.CmdAlignLeft, true)
	svc := service.NewAlignmentService(f.app, nil)

	out, err := svc.AlignSelection(service.AlignLeft, service.RefSelectedObjects)

	require.NoError(t, err)
	assert.Equal(t, office.CmdAlignLeft, out.Command)
	assert.Equal(t, []string{office.CmdAlignLeft}, f.host.Commands())
}

func TestSelectionFallsBackToGeometry(t *testing.T) {
	names := []string{"Box A", "Box B", "Box C"}
	for _, f := range fixtures(t, scenarioBoxes, names...) {
		t.Run(f.name, func(t *testing.T) {
			svc := service.NewAlignmentService(f.app, nil)

			out, err := svc.DistributeSelection(service.DistributeHorizontal)
			require.NoError(t, err)
			assert.Empty(t, out.Command)
			assert.InDelta(t, 255, f.shapes(t, "Box B")[0].Bounds().Left, 0.01)

			out, err = svc.AlignSelection(service.AlignBottom, service.RefSelectedObjects)
			require.NoError(t, err)
			assert.Empty(t, out.Command)
			assert.Zero(t, out.Changed, "bottoms already aligned")
		})
	}
}

func TestDistributeSelectionWithTooFewShapes(t *testing.T) {
	for _, f := range fixtures(t, scenarioBoxes, "Box A") {
		t.Run(f.name, func(t *testing.T) {
			svc := service.NewAlignmentService(f.app, nil)
			_, err := svc.DistributeSelection(service.DistributeVertical)
			assert.ErrorIs(t, err, office.ErrTooFewShapes)
		})
	}
}

func TestAlignToSlideWithoutSlideSize(t *testing.T) {
	f := automationFixture(t, scenarioBoxes, nil)
	shapes := f.all(t, scenarioBoxes)
	before := bounds(shapes)
	f.host.Fail("PageSetup", office.ErrUnsupported, 0)
	log := &recordLogger{}
	svc := service.NewAlignmentService(f.app, log)

	out, err := svc.Align(shapes, service.AlignCenter, service.RefSlide)

	require.NoError(t, err)
	assert.Zero(t, out.Changed)
	assert.Equal(t, before, bounds(shapes))
	assert.Contains(t, log.warns, "slide size unavailable, shapes left in place")
	assert.Zero(t, f.host.UndoEntries())

	out, err = svc.Align(shapes, service.AlignLeft, service.RefFirstObject)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Changed, "other references need no slide size")
}

func TestAlignWithoutApplication(t *testing.T) {
	f := documentFixture(t, scenarioBoxes, nil)
	shapes := f.all(t, scenarioBoxes)
	svc := service.NewAlignmentService(nil, nil)

	_, err := svc.Align(shapes, service.AlignCenter, service.RefSlide)
	var ce *office.ContractError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "align", ce.Op)
	assert.ErrorIs(t, err, office.ErrNilArgument)

	_, err = svc.AlignSelection(service.AlignLeft, service.RefSelectedObjects)
	assert.ErrorIs(t, err, office.ErrNilArgument)
	_, err = svc.DistributeSelection(service.DistributeHorizontal)
	assert.ErrorIs(t, err, office.ErrNilArgument)

	out, err := svc.Align(shapes, service.AlignTop, service.RefSelectedObjects)
	require.NoError(t, err)
	assert.Zero(t, out.Changed)
}
