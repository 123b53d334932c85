package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Pixels   int           // Total number of pixels rendered
	Rays     int           // Camera rays traced, one intersection query each
	Hits     int           // Rays that hit an object
	Duration time.Duration // Wall time of the render
}

// HitRate returns the fraction of rays that hit an object
func (s RenderStats) HitRate() float64 {
	if s.Rays == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Rays)
}

// RaysPerSecond returns the query throughput of the render
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Rays) / s.Duration.Seconds()
}

// Add combines two sets of statistics
func (s RenderStats) Add(other RenderStats) RenderStats {
	return RenderStats{
		Pixels:   s.Pixels + other.Pixels,
		Rays:     s.Rays + other.Rays,
		Hits:     s.Hits + other.Hits,
		Duration: s.Duration + other.Duration,
	}
}
