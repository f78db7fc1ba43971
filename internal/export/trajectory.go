package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/matpoint/internal/dynamo"
)

// StatsHeader is the column layout of the per-iteration stats table.
var StatsHeader = []string{"x", "y", "z", "v_x", "v_y", "v_z", "particle_number", "iter_number"}

// CSVWriter streams samples as stats rows.
type CSVWriter struct {
	w        *csv.Writer
	particle int
	header   bool
}

func NewCSVWriter(w io.Writer, particle int) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w), particle: particle}
}

func (c *CSVWriter) Write(s dynamo.Sample) error {
	if !c.header {
		if err := c.w.Write(StatsHeader); err != nil {
			return err
		}
		c.header = true
	}

	row := make([]string, 0, len(StatsHeader))
	for _, v := range s.Position {
		row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
	}
	for _, v := range s.Velocity {
		row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
	}
	row = append(row, strconv.Itoa(c.particle), strconv.Itoa(s.Step))
	return c.w.Write(row)
}

func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

func WriteCSV(w io.Writer, result *dynamo.Result) error {
	cw := NewCSVWriter(w, 0)
	for _, s := range result.Samples {
		if err := cw.Write(s); err != nil {
			return err
		}
	}
	return cw.Flush()
}

type ExportSample struct {
	Step     int        `json:"step"`
	Time     float64    `json:"time"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
	Force    [3]float64 `json:"force"`
}

type ExportData struct {
	RunID       string             `json:"run_id"`
	Mass        float64            `json:"mass"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
	Samples     []ExportSample     `json:"samples"`
}

func NewExportData(result *dynamo.Result, cfg dynamo.Config) ExportData {
	data := ExportData{
		RunID:       result.RunID,
		Mass:        result.Final.Mass(),
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Steps:       result.StepsTaken,
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
		Samples:     make([]ExportSample, len(result.Samples)),
	}
	for i, s := range result.Samples {
		data.Samples[i] = ExportSample{
			Step:     s.Step,
			Time:     s.Time,
			Position: s.Position,
			Velocity: s.Velocity,
			Force:    s.Force,
		}
	}
	return data
}

func WriteJSON(w io.Writer, result *dynamo.Result, cfg dynamo.Config) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(result, cfg))
}
