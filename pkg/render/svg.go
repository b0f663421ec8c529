package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/klokku/calendarui/pkg/event_area"
)

type Style struct {
	FontFamily     string
	FontSize       int
	Background     string
	GridLine       string
	EventFill      string
	EventText      string
	SketchFill     string
	CurrentTime    string
	TransparentOpa float64
}

var DefaultStyle = Style{
	FontFamily:     "sans-serif",
	FontSize:       12,
	Background:     "#ffffff",
	GridLine:       "#d9d9d9",
	EventFill:      "#3b82f6",
	EventText:      "#ffffff",
	SketchFill:     "#93c5fd",
	CurrentTime:    "#ef4444",
	TransparentOpa: 0.4,
}

type Options struct {
	Style Style
	// HourLines draws a horizontal line for every hour.
	HourLines bool
	// CurrentTimeY, when set, draws the current-time marker at that offset
	// in every day column.
	CurrentTimeY *float64
}

// SVG writes the blocks of area as a standalone SVG document.
func SVG(w io.Writer, area *event_area.EventArea, blocks []event_area.Block, opts Options) error {
	style := opts.Style
	if style == (Style{}) {
		style = DefaultStyle
	}

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%s" height="%s" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.event-text { font-family: %s; font-size: %dpx; fill: %s; }
</style>
</defs>
`, num(area.Width()), num(area.Height()), style.Background, style.FontFamily, style.FontSize, style.EventText))

	drawGrid(&svg, area, style, opts.HourLines)
	for _, block := range blocks {
		drawBlock(&svg, block, style)
	}
	if opts.CurrentTimeY != nil {
		drawCurrentTime(&svg, area, *opts.CurrentTimeY, style)
	}

	svg.WriteString("</svg>\n")

	if _, err := io.WriteString(w, svg.String()); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	return nil
}

func drawGrid(svg *strings.Builder, area *event_area.EventArea, style Style, hourLines bool) {
	for day := 1; day < area.Days(); day++ {
		x := float64(day) * area.DayWidth()
		svg.WriteString(fmt.Sprintf(`<line x1="%s" y1="0" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`+"\n",
			num(x), num(x), num(area.Height()), style.GridLine))
	}
	if !hourLines {
		return
	}
	for hour := 1; hour < 24; hour++ {
		y := float64(hour) / 24 * area.Height()
		svg.WriteString(fmt.Sprintf(`<line x1="0" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`+"\n",
			num(y), num(area.Width()), num(y), style.GridLine))
	}
}

func drawBlock(svg *strings.Builder, block event_area.Block, style Style) {
	fill := style.EventFill
	extra := ""
	switch {
	case block.IsSketch:
		fill = style.SketchFill
		extra = ` stroke-dasharray="4 2" stroke="` + style.EventFill + `"`
	case block.IsTransparent:
		extra = fmt.Sprintf(` opacity="%s"`, num(style.TransparentOpa))
	case block.IsFloating:
		extra = ` stroke="` + style.EventText + `" stroke-width="1"`
	}

	svg.WriteString(fmt.Sprintf(`<g data-key="%s">`, escapeXML(block.Key)))
	svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" rx="3" fill="%s"%s/>`,
		num(block.Left), num(block.Top), num(block.Width), num(block.Height), fill, extra))
	if block.Event.Title != "" && block.Height >= float64(style.FontSize) {
		svg.WriteString(fmt.Sprintf(`<text class="event-text" x="%s" y="%s">%s</text>`,
			num(block.Left+4), num(block.Top+float64(style.FontSize)+2), escapeXML(block.Event.Title)))
	}
	svg.WriteString("</g>\n")
}

func drawCurrentTime(svg *strings.Builder, area *event_area.EventArea, y float64, style Style) {
	svg.WriteString(fmt.Sprintf(`<line x1="0" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2"/>`+"\n",
		num(y), num(area.Width()), num(y), style.CurrentTime))
}

// num prints coordinates with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlReplacer.Replace(s)
}
