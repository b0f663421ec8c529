package render

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/klokku/calendarui/pkg/arranger"
	"github.com/klokku/calendarui/pkg/calendar"
	"github.com/klokku/calendarui/pkg/event_area"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func newArea(t *testing.T, events []calendar.Event, overlay event_area.Overlay) *event_area.EventArea {
	t.Helper()
	area, err := event_area.New(event_area.Init{
		Start:   start,
		Days:    7,
		Width:   700,
		Height:  480,
		Events:  events,
		Overlay: overlay,
	}, arranger.Default{})
	require.NoError(t, err)
	return area
}

func TestSVG_IsWellFormed(t *testing.T) {
	area := newArea(t, []calendar.Event{
		{ID: "a", Title: `Q&A <"live">`, Start: start.Add(9 * time.Hour), End: start.Add(11 * time.Hour)},
	}, nil)
	now := 100.0
	var buf bytes.Buffer

	require.NoError(t, SVG(&buf, area, area.Blocks(), Options{HourLines: true, CurrentTimeY: &now}))

	decoder := xml.NewDecoder(&buf)
	for {
		_, err := decoder.Token()
		if err != nil {
			assert.Equal(t, "EOF", err.Error())
			break
		}
	}
}

func TestSVG_Content(t *testing.T) {
	area := newArea(t, []calendar.Event{
		{ID: "a", Title: "Standup & coffee", Start: start.Add(9 * time.Hour), End: start.Add(10 * time.Hour)},
	}, event_area.Sketching{Start: start.Add(26 * time.Hour), End: start.Add(27 * time.Hour)})
	var buf bytes.Buffer

	require.NoError(t, SVG(&buf, area, area.Blocks(), Options{}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `width="700" height="480"`)
	assert.Contains(t, out, `data-key="a_0"`)
	assert.Contains(t, out, `data-key="sketch_0"`)
	assert.Contains(t, out, "Standup &amp; coffee")
	assert.Contains(t, out, `stroke-dasharray="4 2"`)
	// 6 day separators, no hour lines
	assert.Equal(t, 6, strings.Count(out, `y1="0"`))
}

func TestSVG_TransparentWhileUpdating(t *testing.T) {
	area := newArea(t, []calendar.Event{
		{ID: "a", Start: start.Add(9 * time.Hour), End: start.Add(10 * time.Hour)},
	}, event_area.Updating{EventID: "a", Start: start.Add(12 * time.Hour), End: start.Add(13 * time.Hour)})
	var buf bytes.Buffer

	require.NoError(t, SVG(&buf, area, area.Blocks(), Options{}))

	assert.Contains(t, buf.String(), `opacity="0.4"`)
	assert.Contains(t, buf.String(), `data-key="a_0_drag"`)
}

func TestNum(t *testing.T) {
	assert.Equal(t, "0", num(0))
	assert.Equal(t, "0", num(-0.001))
	assert.Equal(t, "12", num(12))
	assert.Equal(t, "12.5", num(12.5))
	assert.Equal(t, "33.33", num(100.0/3))
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt; &quot;d&quot; &apos;e&apos;", escapeXML(`a & b <c> "d" 'e'`))
}
