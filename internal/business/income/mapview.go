package income

import (
	"fmt"
	"strconv"
)

const (
	DefaultCenterLat = 38.72490
	DefaultCenterLon = -95.61446
	DefaultZoom      = 3.5

	// MarkerSize is the point diameter the map draws every record with.
	MarkerSize = 6
)

// Viewport is the map center and zoom level.
type Viewport struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zoom float64 `json:"zoom"`
}

// DefaultViewport frames the continental United States.
func DefaultViewport() Viewport {
	return Viewport{Lat: DefaultCenterLat, Lon: DefaultCenterLon, Zoom: DefaultZoom}
}

// MapPoint is one marker on the income map.
type MapPoint struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Color     string  `json:"color"`
	HoverText string  `json:"hoverText"`
}

// MapView is everything the map needs to redraw after a state selection.
type MapView struct {
	State      string     `json:"state,omitempty"`
	Points     []MapPoint `json:"points"`
	Legend     []Bin      `json:"legend"`
	Viewport   Viewport   `json:"viewport"`
	MarkerSize int        `json:"markerSize"`
}

// MapView builds the map for state. A nil viewport keeps the default framing, otherwise
// the caller's current viewport is kept so a re-filter does not jump the map around.
func (d *Dataset) MapView(state *string, viewport *Viewport) MapView {
	records := d.Records(state)
	points := make([]MapPoint, len(records))
	for i, r := range records {
		points[i] = MapPoint{
			Lat:       r.Latitude,
			Lon:       r.Longitude,
			Color:     r.Color,
			HoverText: HoverText(r.State, r.County, r.City, r.Mean),
		}
	}

	view := MapView{
		Points:     points,
		Legend:     d.table.Legend(),
		Viewport:   DefaultViewport(),
		MarkerSize: MarkerSize,
	}
	if state != nil {
		view.State = *state
	}
	if viewport != nil {
		view.Viewport = *viewport
	}
	return view
}

// HoverText is the tooltip shown for a map point.
func HoverText(state, county, city string, mean float64) string {
	return fmt.Sprintf("State: %s <br>County: %s <br>City: %s <br>Mean income: %s",
		state, county, city, strconv.FormatFloat(mean, 'f', -1, 64))
}
