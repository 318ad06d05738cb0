/*
Manual build:
  go build -o tools/gen_dummy/gen_telemetry tools/gen_dummy/gen_telemetry.go

Usage example:
  ./tools/gen_dummy/gen_telemetry -n 96 -nominal 220 -out batch.json
  ./tools/gen_dummy/gen_telemetry -n 96 -post http://localhost:8080/api/analyze/tensao
*/

// [FILE] tools/gen_dummy/gen_telemetry.go
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"
)

var (
	count   = flag.Int("n", 96, "number of samples")
	nominal = flag.Float64("nominal", 220, "nominal voltage level")
	stepMin = flag.Int("step", 15, "minutes between samples")
	spikes  = flag.Int("spikes", 2, "number of out-of-band spikes to inject")
	outPath = flag.String("out", "", "write JSON batch to file (default stdout)")
	postURL = flag.String("post", "", "POST the batch to this URL instead of writing it")
	seed    = flag.Int64("seed", 0, "random seed (0 = time-based)")
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

// buildRecords produces a bare record list, the shape the analyzers ingest
// directly. Do not wrap it in an envelope: the feed's dadoEnergia envelope is
// per record, never around the whole list.
func buildRecords(rng *rand.Rand, n int, nominal float64, stepMin, spikes int, start time.Time) []map[string]any {
	jitter := func(base, pct float64) float64 {
		return base * (1 + (rng.Float64()*2-1)*pct)
	}

	records := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(i*stepMin) * time.Minute)
		v1 := jitter(nominal, 0.02)
		v2 := jitter(nominal, 0.02)
		v3 := jitter(nominal, 0.02)
		i1 := jitter(40, 0.15)
		i2 := jitter(40, 0.15)
		i3 := jitter(40, 0.15)
		p := (v1*i1 + v2*i2 + v3*i3) / 1000.0 // kW-ish

		records = append(records, map[string]any{
			"id_equipamento":     "EQP-01",
			"data_coleta":        ts.Format("02/01/2006 15:04:05"),
			"data_inc":           ts.Format("2006-01-02T15:04:05"),
			"tensao_1":           round2(v1),
			"tensao_2":           round2(v2),
			"tensao_3":           round2(v3),
			"corrente_1":         round2(i1),
			"corrente_2":         round2(i2),
			"corrente_3":         round2(i3),
			"potencia_ativa_tot": round2(p),
			"fator_potencia":     round2(0.90 + rng.Float64()*0.08),
		})
	}

	// inject spikes well past the 10% band
	for k := 0; k < spikes && len(records) > 0; k++ {
		idx := rng.Intn(len(records))
		records[idx]["tensao_1"] = round2(nominal * 1.25)
	}

	return records
}

func main() {
	flag.Parse()

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	start := time.Now().Add(-time.Duration(*count**stepMin) * time.Minute).Truncate(time.Minute)
	records := buildRecords(rng, *count, *nominal, *stepMin, *spikes, start)

	body, err := json.MarshalIndent(records, "", "  ")
	must(err)

	switch {
	case *postURL != "":
		resp, err := http.Post(*postURL, "application/json", bytes.NewReader(body))
		must(err)
		defer resp.Body.Close()
		log.Printf("POST %s -> %s", *postURL, resp.Status)
	case *outPath != "":
		must(os.WriteFile(*outPath, body, 0644))
		log.Printf("wrote %d records to %s", len(records), *outPath)
	default:
		fmt.Println(string(body))
	}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
