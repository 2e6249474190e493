package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"

	"github.com/mingli/ziwei/chart"
	"github.com/mingli/ziwei/ganzhi"
)

const (
	cellWidth  = 22
	cellHeight = 6
	starLines  = 3
)

// widthCond pins ambiguous-width runes (box drawing, arrows) to narrow,
// so the plate measures the same regardless of the process locale.
var widthCond = &runewidth.Condition{EastAsianWidth: false}

func displayWidth(s string) int {
	return widthCond.StringWidth(s)
}

// span pairs rendered text with its display width, so padding stays
// correct once color escapes are embedded in the text.
type span struct {
	text  string
	width int
}

func plain(s string) span {
	return span{text: s, width: displayWidth(s)}
}

func tinted(s string, color func(...interface{}) string) span {
	return span{text: color(s), width: displayWidth(s)}
}

func cat(spans ...span) span {
	var b strings.Builder
	w := 0
	for _, sp := range spans {
		b.WriteString(sp.text)
		w += sp.width
	}
	return span{text: b.String(), width: w}
}

var transformTint = map[chart.Transform]func(...interface{}) string{
	chart.TransformLu:   pterm.Green,
	chart.TransformQuan: pterm.Yellow,
	chart.TransformKe:   pterm.Blue,
	chart.TransformJi:   pterm.Red,
}

// plateCells fixes each branch on the traditional plate: 巳午未申 across
// the top row, 寅丑子亥 across the bottom, the rest down the sides.
var plateCells = map[ganzhi.Branch][2]int{
	ganzhi.BranchSi:   {0, 0},
	ganzhi.BranchWu:   {0, 1},
	ganzhi.BranchWei:  {0, 2},
	ganzhi.BranchShen: {0, 3},
	ganzhi.BranchChen: {1, 0},
	ganzhi.BranchYou:  {1, 3},
	ganzhi.BranchMao:  {2, 0},
	ganzhi.BranchXu:   {2, 3},
	ganzhi.BranchYin:  {3, 0},
	ganzhi.BranchChou: {3, 1},
	ganzhi.BranchZi:   {3, 2},
	ganzhi.BranchHai:  {3, 3},
}

// Grid draws the chart as the traditional 4×4 plate with a merged center
// block for the birth data.
func Grid(w io.Writer, r *chart.Result) error {
	var cells [4][4][cellHeight]string
	for pos := 1; pos <= chart.PalaceCount; pos++ {
		p := r.PalaceAt(pos)
		rc := plateCells[p.Branch]
		cells[rc[0]][rc[1]] = palaceCell(p)
	}
	center := centerLines(r)

	h := strings.Repeat("─", cellWidth)
	var b strings.Builder

	b.WriteString("┌" + h + "┬" + h + "┬" + h + "┬" + h + "┐\n")
	for l := 0; l < cellHeight; l++ {
		b.WriteString("│" + cells[0][0][l] + "│" + cells[0][1][l] + "│" + cells[0][2][l] + "│" + cells[0][3][l] + "│\n")
	}
	b.WriteString("├" + h + "┼" + h + "┴" + h + "┼" + h + "┤\n")
	for l := 0; l < cellHeight; l++ {
		b.WriteString("│" + cells[1][0][l] + "│" + center[l] + "│" + cells[1][3][l] + "│\n")
	}
	b.WriteString("├" + h + "┤" + center[cellHeight] + "├" + h + "┤\n")
	for l := 0; l < cellHeight; l++ {
		b.WriteString("│" + cells[2][0][l] + "│" + center[cellHeight+1+l] + "│" + cells[2][3][l] + "│\n")
	}
	b.WriteString("├" + h + "┼" + h + "┬" + h + "┼" + h + "┤\n")
	for l := 0; l < cellHeight; l++ {
		b.WriteString("│" + cells[3][0][l] + "│" + cells[3][1][l] + "│" + cells[3][2][l] + "│" + cells[3][3][l] + "│\n")
	}
	b.WriteString("└" + h + "┴" + h + "┴" + h + "┴" + h + "┘\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// palaceCell lays out one palace: up to three star lines, the opposite
// influences, the decade band with the flow year, and the name footer.
func palaceCell(p *chart.Palace) [cellHeight]string {
	var out [cellHeight]string
	self := selfLookup(p)

	tokens := make([]span, 0, 8)
	for _, ps := range p.AllStars() {
		tokens = append(tokens, starSpan(ps, self))
	}
	lines := wrapSpans(tokens, cellWidth, starLines)
	for i := 0; i < starLines; i++ {
		if i < len(lines) {
			out[i] = padSpans(lines[i], cellWidth)
		} else {
			out[i] = strings.Repeat(" ", cellWidth)
		}
	}

	out[3] = padSpans(oppositeSpans(p), cellWidth)
	out[4] = padSpans([]span{
		plain(fmt.Sprintf("%d-%d", p.Limit.StartAge, p.Limit.EndAge)),
		plain(strconv.Itoa(p.Flow.Year) + p.Flow.Stem.Glyph()),
	}, cellWidth)
	out[5] = padSpans(footerSpans(p), cellWidth)
	return out
}

func starSpan(ps chart.PlacedStar, self map[chart.Star]chart.Transform) span {
	parts := make([]span, 0, 4)
	switch ps.Star.Category() {
	case chart.CategoryMajor:
		parts = append(parts, tinted(ps.Star.Glyph(), pterm.Yellow))
	case chart.CategoryAuxiliary:
		parts = append(parts, tinted(ps.Star.Glyph(), pterm.LightCyan))
	default:
		parts = append(parts, plain(ps.Star.Glyph()))
	}
	if ps.Brightness != chart.BrightnessNone {
		parts = append(parts, plain(string(ps.Brightness)))
	}
	for _, tr := range ps.Transforms {
		parts = append(parts, tinted("化"+tr.Glyph(), transformTint[tr]))
	}
	if kind, ok := self[ps.Star]; ok {
		parts = append(parts, tinted("自化"+kind.Glyph(), transformTint[kind]))
	}
	return cat(parts...)
}

func oppositeSpans(p *chart.Palace) []span {
	if len(p.OppositeInfluences) == 0 {
		return nil
	}
	spans := []span{plain("对宫")}
	for _, inf := range p.OppositeInfluences {
		spans = append(spans, cat(
			tinted(inf.Kind.Glyph(), transformTint[inf.Kind]),
			plain("→"+inf.Star.Glyph()),
		))
	}
	return spans
}

func footerSpans(p *chart.Palace) []span {
	name := plain(p.Name.Glyph())
	if p.Name == chart.PalaceLife {
		name = tinted(p.Name.Glyph(), pterm.LightCyan)
	}
	spans := []span{name, plain(p.Stem.Glyph() + p.Branch.Glyph())}
	if p.Body {
		spans = append(spans, tinted("身", pterm.Green))
	}
	return spans
}

func centerLines(r *chart.Result) [2*cellHeight + 1]string {
	const width = 2*cellWidth + 1

	title := r.Input.Label
	if title == "" {
		title = "紫微斗数"
	}
	rows := []span{
		{},
		tinted(title, pterm.Yellow),
		{},
		cat(tinted("阳历", pterm.LightCyan), plain(" "+bornLine(r))),
		cat(tinted("农历", pterm.LightCyan), plain(" "+r.Lunar.String())),
		cat(tinted("年柱", pterm.LightCyan),
			plain(" "+r.YearStem.Glyph()+r.YearBranch.Glyph()+" "+r.Polarity.String()+r.Input.Gender.Glyph())),
		cat(tinted("五行局", pterm.LightCyan), plain(" "+r.Bureau.Glyph())),
	}
	if r.Headline != "" {
		rows = append(rows, cat(tinted("命主", pterm.LightCyan), plain(" "+r.Headline)))
	}
	rows = append(rows,
		cat(tinted("流年", pterm.LightCyan), plain(" "+strconv.Itoa(r.Input.AsOfYear))),
		span{},
		plain(r.ChartID),
	)

	var out [2*cellHeight + 1]string
	for i := range out {
		if i < len(rows) {
			out[i] = centerSpan(rows[i], width)
		} else {
			out[i] = strings.Repeat(" ", width)
		}
	}
	return out
}

func centerSpan(sp span, width int) string {
	if sp.width >= width {
		return sp.text
	}
	left := (width - sp.width) / 2
	right := width - sp.width - left
	return strings.Repeat(" ", left) + sp.text + strings.Repeat(" ", right)
}

// wrapSpans fills lines greedily, one space between tokens. Overflow past
// maxLines collapses into a trailing ellipsis.
func wrapSpans(tokens []span, width, maxLines int) [][]span {
	var lines [][]span
	var cur []span
	used := 0
	for _, tok := range tokens {
		need := tok.width
		if len(cur) > 0 {
			need++
		}
		if len(cur) > 0 && used+need > width {
			lines = append(lines, cur)
			cur = nil
			used = 0
			need = tok.width
		}
		cur = append(cur, tok)
		used += need
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1]
		for len(last) > 0 && lineWidth(last)+2 > width {
			last = last[:len(last)-1]
		}
		lines[maxLines-1] = append(last, plain("…"))
	}
	return lines
}

func lineWidth(spans []span) int {
	w := 0
	for i, sp := range spans {
		if i > 0 {
			w++
		}
		w += sp.width
	}
	return w
}

func padSpans(spans []span, width int) string {
	var b strings.Builder
	used := 0
	for i, sp := range spans {
		if i > 0 {
			b.WriteByte(' ')
			used++
		}
		b.WriteString(sp.text)
		used += sp.width
	}
	if used < width {
		b.WriteString(strings.Repeat(" ", width-used))
	}
	return b.String()
}
