package app

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/eivissacopter/battdash/models"
)

// SmoothingWindow is the fixed moving average window used for display
// smoothing.
const SmoothingWindow = 15

// SeriesRequest describes one chart request over a loaded frame.
type SeriesRequest struct {
	XColumn          string
	YColumns         []string
	FullThrottle     bool
	Smooth           bool
	CombineFrontRear bool
}

// SeriesLoader fetches and cleans full file content per plot request. The
// metadata cache stores only headers and two scalar readings, so this
// always re-fetches.
type SeriesLoader struct {
	Client *http.Client
}

func NewSeriesLoader() *SeriesLoader {
	return &SeriesLoader{Client: http.DefaultClient}
}

func (l *SeriesLoader) Load(fileURL string) (*models.SeriesFrame, error) {
	resp, err := l.Client.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", fileURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %d", fileURL, resp.StatusCode)
	}

	frame, err := ParseTable(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fileURL, err)
	}

	CleanFrame(frame)
	return frame, nil
}

// BuildSeries turns a cleaned frame into chart-ready points. Rows where
// either coordinate is NaN are skipped; row order is preserved.
func BuildSeries(frame *models.SeriesFrame, req SeriesRequest) ([]models.SeriesPoint, error) {
	if req.FullThrottle {
		RestrictFullThrottle(frame)
	}
	if req.CombineFrontRear {
		CombineFrontRear(frame)
	}

	xs := frame.Column(req.XColumn)
	if xs == nil {
		return nil, fmt.Errorf("column %q not present", req.XColumn)
	}

	var points []models.SeriesPoint
	for _, name := range req.YColumns {
		ys := frame.Column(name)
		if ys == nil {
			return nil, fmt.Errorf("column %q not present", name)
		}
		if req.Smooth {
			ys = MovingAverage(ys, SmoothingWindow)
		}
		for i := 0; i < frame.Rows; i++ {
			if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
				continue
			}
			points = append(points, models.SeriesPoint{X: xs[i], Y: ys[i], Label: name})
		}
	}

	return points, nil
}

// MovingAverage smooths with a trailing window that expands at the head,
// so the output has the same length as the input and a constant series
// is unchanged. NaN samples are left out of the window sum.
func MovingAverage(vals []float64, window int) []float64 {
	if window <= 1 {
		out := make([]float64, len(vals))
		copy(out, vals)
		return out
	}

	out := make([]float64, len(vals))
	for i := range vals {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum, n := 0.0, 0
		for j := start; j <= i; j++ {
			if math.IsNaN(vals[j]) {
				continue
			}
			sum += vals[j]
			n++
		}
		if n == 0 {
			out[i] = math.NaN()
		} else {
			out[i] = sum / float64(n)
		}
	}
	return out
}

// RestrictFullThrottle keeps only rows where the accelerator pedal column
// equals its maximum, isolating full throttle runs. Without the column
// the frame is left untouched.
func RestrictFullThrottle(frame *models.SeriesFrame) {
	pedal := frame.Column(ColAccelPedal)
	if pedal == nil {
		return
	}

	max := math.Inf(-1)
	for _, v := range pedal {
		if !math.IsNaN(v) && v > max {
			max = v
		}
	}
	if math.IsInf(max, -1) {
		return
	}

	DropOutOfBounds(frame, ColAccelPedal, models.Range{Min: max, Max: max})
}

// CombineFrontRear sums matching "Front X"/"Rear X" column pairs into a
// "Combined X" column. The sum is NaN where either side is NaN.
func CombineFrontRear(frame *models.SeriesFrame) {
	for _, h := range frame.Headers {
		suffix, ok := strings.CutPrefix(h, "Front ")
		if !ok {
			continue
		}
		rear := frame.Column("Rear " + suffix)
		if rear == nil {
			continue
		}
		combined := "Combined " + suffix
		if frame.HasColumn(combined) {
			continue
		}

		front := frame.Column(h)
		sum := make([]float64, frame.Rows)
		for i := 0; i < frame.Rows; i++ {
			sum[i] = front[i] + rear[i]
		}
		frame.Headers = append(frame.Headers, combined)
		frame.Columns[combined] = sum
	}
}
