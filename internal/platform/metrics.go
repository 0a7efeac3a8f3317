package platform

import "sync"

// Metrics describes a display.
type Metrics struct {
	WidthPx       int     `toml:"width_px" json:"width_px"`
	HeightPx      int     `toml:"height_px" json:"height_px"`
	DensityDpi    int     `toml:"density_dpi" json:"density_dpi"`
	Density       float32 `toml:"density" json:"density"`
	ScaledDensity float32 `toml:"scaled_density" json:"scaled_density"`
}

// Vector returns the metrics in ScreenInfo order.
func (m Metrics) Vector() [5]float32 {
	return [5]float32{
		float32(m.WidthPx),
		float32(m.HeightPx),
		float32(m.DensityDpi),
		m.Density,
		m.ScaledDensity,
	}
}

// DipToPixels converts density-independent pixels to pixels.
func DipToPixels(m Metrics, value float32) float32 {
	return value * m.Density
}

// SpToPixels converts scale-independent pixels to pixels.
func SpToPixels(m Metrics, value float32) float32 {
	return value * m.ScaledDensity
}

// StaticDisplay serves metrics taken from configuration. Set replaces them
// when the configuration is reloaded.
type StaticDisplay struct {
	mu      sync.RWMutex
	Metrics Metrics
}

// Set replaces the served metrics.
func (d *StaticDisplay) Set(m Metrics) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Metrics = m
}

// CurrentMetrics implements Display. A display with no width or height is unknown.
func (d *StaticDisplay) CurrentMetrics() (Metrics, bool) {
	if d == nil {
		return Metrics{}, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.Metrics.WidthPx <= 0 || d.Metrics.HeightPx <= 0 {
		return Metrics{}, false
	}
	return d.Metrics, true
}
