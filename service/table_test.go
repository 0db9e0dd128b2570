package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/pptassist/config"
	"github.com/VantageDataChat/pptassist/office"
	"github.com/VantageDataChat/pptassist/pptx"
	"github.com/VantageDataChat/pptassist/service"
)

func TestThreeLineContract(t *testing.T) {
	for _, size := range []struct{ rows, cols int }{{2, 1}, {4, 3}} {
		for _, f := range fixtures(t, nil) {
			t.Run(f.name, func(t *testing.T) {
				svc := service.NewTableFormatService(f.app, nil, nil)
				_, table := f.newTable(t, size.rows, size.cols)

				require.NoError(t, svc.FormatTableAsThreeLine(table))

				for r := 1; r <= size.rows; r++ {
					for c := 1; c <= size.cols; c++ {
						cell := table.Cell(r, c)
						require.NotNil(t, cell)
						bottom := cell.Border(office.BorderBottom)
						if r == 1 || r == size.rows {
							assert.True(t, bottom.Visible, "row %d bottom", r)
						} else {
							assert.False(t, bottom.Visible, "row %d bottom", r)
						}
						assert.False(t, cell.Border(office.BorderLeft).Visible, "cell %d,%d left", r, c)
						assert.False(t, cell.Border(office.BorderRight).Visible, "cell %d,%d right", r, c)
						if r > 2 {
							assert.False(t, cell.Border(office.BorderTop).Visible, "row %d top", r)
						}
					}
				}

				top := table.Cell(1, 1).Border(office.BorderTop)
				assert.True(t, top.Visible)
				assert.InDelta(t, 1.5, top.Weight, 0.01)
				assert.InDelta(t, 0.75, table.Cell(1, 1).Border(office.BorderBottom).Weight, 0.01)
				assert.InDelta(t, 1.5, table.Cell(size.rows, 1).Border(office.BorderBottom).Weight, 0.01)

				font := table.Cell(1, 1).Font()
				assert.Equal(t, "Microsoft YaHei", font.Name)
				assert.True(t, font.Bold)
				assert.InDelta(t, 12, font.Size, 0.01)
				assert.False(t, table.Cell(2, 1).Font().Bold)
			})
		}
	}
}

func TestThreeLineStyleIDPerPlatform(t *testing.T) {
	cfg := config.DefaultConfig()

	doc := documentFixture(t, nil, nil)
	_, table := doc.newTable(t, 3, 2)
	require.NoError(t, service.NewTableFormatService(doc.app, cfg, nil).FormatTableAsThreeLine(table))
	model, ok := table.Native().(*pptx.TableShape)
	require.True(t, ok)
	assert.Equal(t, cfg.Table.StyleID, model.GetStyleID())

	auto := automationFixture(t, nil, nil)
	shape, table := auto.newTable(t, 3, 2)
	require.NoError(t, service.NewTableFormatService(auto.app, cfg, nil).FormatTableAsThreeLine(table))
	node := auto.host.Shape(1, shape.Name())
	require.NotNil(t, node)
	assert.Empty(t, node.Child("Table").String("StyleId"), "native style skipped on the late-bound host")
	assert.True(t, table.Flags().FirstRow)
}

func TestThreeLineReadsConfigAtCallTime(t *testing.T) {
	cfg := config.DefaultConfig()
	f := documentFixture(t, nil, nil)
	svc := service.NewTableFormatService(f.app, cfg, nil)
	_, table := f.newTable(t, 3, 1)

	cfg.Table.HeaderBorderWeight = 2.25
	require.NoError(t, svc.FormatTableAsThreeLine(table))

	assert.InDelta(t, 2.25, table.Cell(1, 1).Border(office.BorderTop).Weight, 0.01)
}

func TestSetRowStyleIsIdempotent(t *testing.T) {
	style := office.RowStyle{
		Font:   office.FontStyle{Name: "Arial", Size: 11, Bold: true},
		Top:    office.SolidBorder(1, office.RGBColor(0x112233)),
		Bottom: office.SolidBorder(2, office.RGBColor(0x445566)),
		Fill:   office.RGBColor(0xEEEEEE),
	}
	for _, f := range fixtures(t, nil) {
		t.Run(f.name, func(t *testing.T) {
			svc := service.NewTableFormatService(f.app, nil, nil)
			_, table := f.newTable(t, 2, 2)
			table.Cell(1, 2).SetBorder(office.BorderLeft, office.SolidBorder(3, office.RGBColor(0)))

			require.NoError(t, svc.SetRowStyle(table, 1, style))
			first := rowBorders(table, 1)
			require.NoError(t, svc.SetRowStyle(table, 1, style))

			assert.Equal(t, first, rowBorders(table, 1))
			assert.False(t, table.Cell(1, 2).Border(office.BorderLeft).Visible, "old border cleared")
			assert.True(t, table.Cell(1, 1).Border(office.BorderTop).Visible)
			assert.InDelta(t, 2, table.Cell(1, 1).Border(office.BorderBottom).Weight, 0.01)
			assert.Equal(t, "Arial", table.Cell(1, 1).Font().Name)

			assert.NoError(t, svc.SetRowStyle(table, 9, style), "out of range rows are ignored")
			assert.ErrorIs(t, svc.SetRowStyle(nil, 1, style), office.ErrNilArgument)
		})
	}
}

func rowBorders(table office.Table, row int) []office.BorderStyle {
	var out []office.BorderStyle
	for c := 1; c <= table.Columns(); c++ {
		for _, side := range office.AllBorderSides {
			out = append(out, table.Cell(row, c).Border(side))
		}
	}
	return out
}

func TestFormatTableOptions(t *testing.T) {
	header := office.RowStyle{Bottom: office.BorderStyle{Visible: true, Weight: 1, Line: office.LineDash}}
	data := office.RowStyle{Bottom: office.SolidBorder(0.5, office.RGBColor(0))}
	alt := office.RowStyle{Fill: office.RGBColor(0xF2F2F2)}
	flags := office.TableFlags{FirstRow: true, BandRows: true}

	for _, f := range fixtures(t, nil) {
		t.Run(f.name, func(t *testing.T) {
			svc := service.NewTableFormatService(f.app, nil, nil)
			_, table := f.newTable(t, 4, 2)

			err := svc.FormatTable(table, service.TableFormatOptions{
				Flags:     &flags,
				Header:    &header,
				Data:      &data,
				Alternate: &alt,
			})
			require.NoError(t, err)

			assert.Equal(t, flags, table.Flags())
			assert.True(t, table.Cell(2, 1).Border(office.BorderBottom).Visible)
			assert.False(t, table.Cell(3, 1).Border(office.BorderBottom).Visible, "alternate row has no rule")
			assert.True(t, table.Cell(4, 1).Border(office.BorderBottom).Visible, "last row rule reapplied")

			want := office.LineDash
			if !f.app.IsFeatureSupported(office.FeatureTableAdvancedBorder) {
				want = office.LineSolid
			}
			assert.Equal(t, want, table.Cell(1, 1).Border(office.BorderBottom).Line)

			assert.ErrorIs(t, svc.FormatTable(nil, service.TableFormatOptions{}), office.ErrNilArgument)
		})
	}
}

func TestFormatNumbers(t *testing.T) {
	for _, f := range fixtures(t, nil) {
		t.Run(f.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			svc := service.NewTableFormatService(f.app, cfg, nil)
			_, table := f.newTable(t, 2, 3)
			texts := [][]string{{"Region", "Sales", "Share"}, {"1,234", "1234.5", "12%"}}
			for r, row := range texts {
				for c, v := range row {
					table.Cell(r+1, c+1).SetText(v)
				}
			}

			n, err := svc.FormatNumbers(table, -1)

			require.NoError(t, err)
			assert.Equal(t, 3, n)
			assert.Equal(t, "Region", table.Cell(1, 1).Text())
			assert.Equal(t, "1,234.00", table.Cell(2, 1).Text())
			assert.Equal(t, "1234.50", table.Cell(2, 2).Text())
			assert.Equal(t, "12.00%", table.Cell(2, 3).Text())

			n, err = svc.FormatNumbers(table, 0)
			require.NoError(t, err)
			assert.Equal(t, 3, n)
			assert.Equal(t, "1234", table.Cell(2, 2).Text(), "rounds half to even")
		})
	}
}
