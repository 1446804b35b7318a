package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"strings"
	"sync"

	"gougewatch/internal/geo"
	"gougewatch/internal/sections"
)

// HTMLSink accumulates fragments and writes a single self-contained dashboard
// page on Close: metric cards, an inline SVG timeline, Leaflet choropleth maps
// (CartoDB Positron tiles), and tables. The only external assets are the
// Leaflet CDN script and stylesheet.
type HTMLSink struct {
	path      string
	mu        sync.Mutex
	fragments []sections.Fragment
}

func NewHTMLSink(path string) (*HTMLSink, error) {
	if path == "" {
		return nil, fmt.Errorf("html path required")
	}
	return &HTMLSink{path: path}, nil
}

func (s *HTMLSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := v.(sections.Fragment); ok {
		s.fragments = append(s.fragments, f)
	}
	return nil
}

func (s *HTMLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := buildPage(s.fragments)
	if err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create html file: %w", err)
	}
	if err := dashboardTemplate.Execute(f, page); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Chart geometry (SVG user units).
const (
	chartWidth  = 900
	chartHeight = 300
	chartPad    = 40
)

type htmlPage struct {
	Sections []htmlSection
	MapsJSON template.JS // array of map layer specs consumed by the Leaflet loop
}

type htmlSection struct {
	Fragment     sections.Fragment
	OK           bool
	ChartPoints  string // SVG polyline points attribute
	ChartYMax    int
	ChartXMin    string
	ChartXMax    string
	MapElementID string
	TableHeight  int
}

type mapLayerJSON struct {
	ElementID      string          `json:"element_id"`
	Label          string          `json:"label"`
	Center         [2]float64      `json:"center"`
	Zoom           float64         `json:"zoom"`
	LabelColumn    string          `json:"label_column"`
	LabelProperty  string          `json:"label_property"`
	MetricProperty string          `json:"metric_property"`
	Breaks         []float64       `json:"breaks"`
	Colors         []string        `json:"colors"`
	Legend         string          `json:"legend"`
	Data           json.RawMessage `json:"data"`
}

func buildPage(fragments []sections.Fragment) (*htmlPage, error) {
	page := &htmlPage{}
	var maps []mapLayerJSON

	for _, f := range fragments {
		hs := htmlSection{Fragment: f, OK: f.Status == sections.StatusOK}
		if f.Table != nil {
			hs.TableHeight = f.Table.Height
		}

		if f.Chart != nil && len(f.Chart.Points) > 0 {
			hs.ChartPoints, hs.ChartYMax = chartPolyline(f.Chart)
			hs.ChartXMin = f.Chart.Points[0].Date.Format("2006-01-02")
			hs.ChartXMax = f.Chart.Points[len(f.Chart.Points)-1].Date.Format("2006-01-02")
		}

		if f.Map != nil {
			hs.MapElementID = "map-" + f.Map.LayerID
			maps = append(maps, mapLayerJSON{
				ElementID:      hs.MapElementID,
				Label:          f.Map.Label,
				Center:         f.Map.Center,
				Zoom:           f.Map.Zoom,
				LabelColumn:    f.Map.LabelColumn,
				LabelProperty:  f.Map.LabelProperty,
				MetricProperty: f.Map.MetricProperty,
				Breaks:         f.Map.Breaks,
				Colors:         geo.OrRdRamp,
				Legend:         f.Map.Legend,
				Data:           f.Map.FeatureCollection,
			})
		}

		page.Sections = append(page.Sections, hs)
	}

	raw, err := json.Marshal(maps)
	if err != nil {
		return nil, fmt.Errorf("marshal map layers: %w", err)
	}
	page.MapsJSON = template.JS(raw)
	return page, nil
}

func chartPolyline(c *sections.Chart) (points string, yMax int) {
	for _, p := range c.Points {
		if p.Value > yMax {
			yMax = p.Value
		}
	}
	if yMax == 0 {
		yMax = 1
	}

	x0 := c.Points[0].Date
	span := c.Points[len(c.Points)-1].Date.Sub(x0)
	if span <= 0 {
		span = 1
	}

	plotW := float64(chartWidth - 2*chartPad)
	plotH := float64(chartHeight - 2*chartPad)

	var b strings.Builder
	for i, p := range c.Points {
		x := float64(chartPad) + plotW*float64(p.Date.Sub(x0))/float64(span)
		y := float64(chartHeight-chartPad) - plotH*float64(p.Value)/float64(yMax)
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", x, y)
	}
	return b.String(), yMax
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Rent Gouging in Los Angeles County</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
  body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 2rem auto; max-width: 960px; color: #222; }
  h2 { border-bottom: 1px solid #ddd; padding-bottom: .3rem; }
  .metrics { display: flex; gap: 1rem; flex-wrap: wrap; }
  .metric { border: 1px solid #ddd; border-radius: 6px; padding: 1rem; min-width: 200px; }
  .metric .label { font-size: .8rem; color: #666; }
  .metric .value { font-size: 1.6rem; font-weight: 600; }
  .metric .delta { font-size: .8rem; color: #c00; }
  .error { color: #c00; }
  .map { height: 600px; margin-bottom: .5rem; }
  .tablewrap { overflow-y: auto; }
  table { border-collapse: collapse; width: 100%; font-size: .85rem; }
  th, td { text-align: left; padding: .35rem .5rem; border-bottom: 1px solid #eee; white-space: nowrap; }
  th { position: sticky; top: 0; background: #fafafa; }
  .legend { background: #fff; padding: 6px 8px; font-size: 12px; line-height: 18px; box-shadow: 0 0 15px rgba(0,0,0,.2); border-radius: 4px; }
  .legend i { width: 18px; height: 18px; float: left; margin-right: 8px; opacity: .7; }
</style>
</head>
<body>
{{range .Sections}}
<section>
  <h2>{{.Fragment.Title}}</h2>
  {{if not .OK}}
    <p class="error">[{{.Fragment.Status}}] {{.Fragment.Message}}</p>
  {{else}}
    {{if .Fragment.Metrics}}
    <div class="metrics">
      {{range .Fragment.Metrics}}
      <div class="metric">
        <div class="label">{{.Label}}</div>
        <div class="value">{{.Value}}</div>
        {{if .Delta}}<div class="delta">{{.Delta}}</div>{{end}}
      </div>
      {{end}}
    </div>
    {{end}}
    {{if .ChartPoints}}
    <svg viewBox="0 0 900 300" role="img" aria-label="{{.Fragment.Chart.Label}}">
      <line x1="40" y1="260" x2="860" y2="260" stroke="#ccc"/>
      <line x1="40" y1="40" x2="40" y2="260" stroke="#ccc"/>
      <polyline fill="none" stroke="#ff0000" stroke-width="2" points="{{.ChartPoints}}"/>
      <text x="40" y="280" font-size="12">{{.ChartXMin}}</text>
      <text x="860" y="280" font-size="12" text-anchor="end">{{.ChartXMax}}</text>
      <text x="36" y="44" font-size="12" text-anchor="end">{{.ChartYMax}}</text>
      <text x="36" y="264" font-size="12" text-anchor="end">0</text>
    </svg>
    {{end}}
    {{if .MapElementID}}
    <div id="{{.MapElementID}}" class="map"></div>
    {{end}}
    {{if .Fragment.Table}}
    <div class="tablewrap"{{if .TableHeight}} style="max-height: {{.TableHeight}}px"{{end}}>
      <table>
        <thead><tr>{{range .Fragment.Table.Columns}}<th>{{.}}</th>{{end}}</tr></thead>
        <tbody>
        {{range .Fragment.Table.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
        {{end}}
        </tbody>
      </table>
    </div>
    {{end}}
  {{end}}
</section>
{{end}}
<script>
var LAYERS = {{.MapsJSON}};
(LAYERS || []).forEach(function (spec) {
  var map = L.map(spec.element_id, {
    zoomControl: true,
    zoomDelta: 0.5,
    minZoom: 7,
    maxZoom: 20
  }).setView(spec.center, spec.zoom);
  L.tileLayer("https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png", {
    attribution: '&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> &copy; <a href="https://carto.com/attributions">CARTO</a>'
  }).addTo(map);

  function fill(v) {
    var breaks = spec.breaks || [];
    var colors = spec.colors;
    if (breaks.length < 2) { return colors[0]; }
    var classes = breaks.length - 1;
    for (var i = 1; i < classes; i++) {
      if (v <= breaks[i]) {
        return colors[Math.floor((i - 1) * (colors.length - 1) / (classes - 1))];
      }
    }
    return colors[colors.length - 1];
  }

  L.geoJSON(spec.data, {
    style: function (f) {
      return {
        fillColor: fill(f.properties[spec.metric_property] || 0),
        fillOpacity: 0.7,
        color: "black",
        weight: 0.5,
        opacity: 0.2
      };
    },
    onEachFeature: function (f, layer) {
      layer.bindTooltip(
        spec.label_column + ": " + f.properties[spec.label_property] +
        "<br>Gouged Listings: " + (f.properties[spec.metric_property] || 0),
        { sticky: true }
      );
    }
  }).addTo(map);

  var legend = L.control({ position: "bottomright" });
  legend.onAdd = function () {
    var div = L.DomUtil.create("div", "legend");
    div.innerHTML = "<strong>" + spec.legend + "</strong><br>";
    var breaks = spec.breaks || [];
    for (var i = 0; i + 1 < breaks.length; i++) {
      div.innerHTML += '<i style="background:' + fill(breaks[i + 1]) + '"></i>' +
        Math.round(breaks[i]) + " &ndash; " + Math.round(breaks[i + 1]) + "<br>";
    }
    return div;
  };
  legend.addTo(map);
});
</script>
</body>
</html>
`))
