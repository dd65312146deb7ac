// seehuhn.de/go/vision - raster drawing and volumetric fusion
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package volume

import "github.com/prometheus/client_golang/prometheus"

// Collector exports the block counts and the frame counter of a volume as
// Prometheus metrics.
type Collector struct {
	v *Volume

	units   *prometheus.Desc
	visible *prometheus.Desc
	frames  *prometheus.Desc
}

// NewCollector returns a collector for v.  The name is attached to all
// metrics as the "volume" label.
func NewCollector(v *Volume, name string) *Collector {
	labels := prometheus.Labels{"volume": name}
	return &Collector{
		v: v,
		units: prometheus.NewDesc("vision_volume_units",
			"Number of allocated volume units.", nil, labels),
		visible: prometheus.NewDesc("vision_volume_visible_blocks",
			"Number of volume units sampled by the last raycast.", nil, labels),
		frames: prometheus.NewDesc("vision_volume_integrated_frames_total",
			"Number of depth frames integrated since the last reset.", nil, labels),
	}
}

// Describe implements [prometheus.Collector].
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.units
	ch <- c.visible
	ch <- c.frames
}

// Collect implements [prometheus.Collector].  It must not run concurrently
// with operations which modify the volume.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.units, prometheus.GaugeValue, float64(c.v.TotalVolumeUnits()))
	ch <- prometheus.MustNewConstMetric(c.visible, prometheus.GaugeValue, float64(c.v.VisibleBlocks()))
	ch <- prometheus.MustNewConstMetric(c.frames, prometheus.CounterValue, float64(c.v.IntegratedFrames()))
}
