package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/matpoint/internal/dynamo"
	"github.com/san-kum/matpoint/internal/forces"
	"github.com/san-kum/matpoint/internal/point"
)

func runFreeFall(t *testing.T) (*dynamo.Result, dynamo.Config) {
	t.Helper()
	p, err := point.New(0, 0, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	p.SetVelocity(mgl64.Vec3{1, 0, 0})

	cfg := dynamo.Config{Dt: 0.1, Duration: 0.5}
	result, err := dynamo.New(forces.NewGravity(10)).Run(context.Background(), p, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return result, cfg
}

func TestWriteCSV(t *testing.T) {
	result, _ := runFreeFall(t)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, result); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(records) != len(result.Samples)+1 {
		t.Fatalf("expected %d rows, got %d", len(result.Samples)+1, len(records))
	}
	if strings.Join(records[0], ",") != "x,y,z,v_x,v_y,v_z,particle_number,iter_number" {
		t.Errorf("header = %v", records[0])
	}

	first := records[1]
	if first[0] != "0" || first[2] != "10" || first[3] != "1" || first[6] != "0" || first[7] != "0" {
		t.Errorf("first row = %v", first)
	}
	last := records[len(records)-1]
	if last[7] != "5" {
		t.Errorf("last iteration = %s, want 5", last[7])
	}
}

func TestCSVWriter_StreamMatchesWriteCSV(t *testing.T) {
	result, cfg := runFreeFall(t)

	var recorded bytes.Buffer
	if err := WriteCSV(&recorded, result); err != nil {
		t.Fatal(err)
	}

	p, err := point.New(0, 0, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	p.SetVelocity(mgl64.Vec3{1, 0, 0})

	var streamed bytes.Buffer
	w := NewCSVWriter(&streamed, 0)
	var writeErr error
	_, err = dynamo.New(forces.NewGravity(10)).RunWithCallback(context.Background(), p, cfg, func(s dynamo.Sample) bool {
		writeErr = w.Write(s)
		return writeErr == nil
	})
	if err != nil || writeErr != nil {
		t.Fatalf("stream: %v, write: %v", err, writeErr)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	if streamed.String() != recorded.String() {
		t.Errorf("streamed csv differs from recorded:\n%s\nvs\n%s", streamed.String(), recorded.String())
	}
}

func TestCSVWriter_Particle(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf, 3)
	if err := w.Write(dynamo.Sample{Step: 7}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || lines[1] != "0,0,0,0,0,0,3,7" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	result, cfg := runFreeFall(t)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, result, cfg); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.RunID != result.RunID || data.Mass != 2 || data.Steps != 5 {
		t.Errorf("header fields = %+v", data)
	}
	if len(data.Samples) != 6 {
		t.Fatalf("expected 6 samples, got %d", len(data.Samples))
	}
	if data.Samples[0].Force != [3]float64{0, 0, -20} {
		t.Errorf("force = %v", data.Samples[0].Force)
	}
}
