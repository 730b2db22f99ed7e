package eval

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Probe is one reliability expectation.
type Probe struct {
	Description string `json:"description"`
	Want        int    `json:"want"`
	Got         int    `json:"got"`
	Passed      bool   `json:"passed"`
	Error       string `json:"error,omitempty"`
}

// ReliabilityReport lists validation and endpoint probes.
type ReliabilityReport struct {
	Probes []Probe `json:"probes"`
	Passed int     `json:"passed"`
	Total  int     `json:"total"`
}

type checkProbe struct {
	description string
	text        string
	want        int
}

var checkProbes = []checkProbe{
	{"Empty text", "", http.StatusBadRequest},
	{"Text too long", strings.Repeat("a", 6000), http.StatusBadRequest},
	{"Normal text", "This is a normal sentence.", http.StatusOK},
	{"Text with errors", "I goes to store.", http.StatusOK},
}

var endpointProbes = []struct {
	description string
	path        string
}{
	{"Root endpoint", "/"},
	{"Health check", "/health"},
	{"Metrics", "/metrics"},
}

// RunReliability verifies input validation and that the read-only
// endpoints answer 200.
func RunReliability(ctx context.Context, c *Client) ReliabilityReport {
	var report ReliabilityReport

	for _, p := range checkProbes {
		probe := Probe{Description: p.description, Want: p.want}
		res, err := c.Check(ctx, p.text)
		if err != nil {
			probe.Error = err.Error()
		} else {
			probe.Got = res.Status
		}
		report.add(probe)
	}

	for _, p := range endpointProbes {
		probe := Probe{Description: p.description, Want: http.StatusOK}
		status, err := c.Status(ctx, p.path)
		if err != nil {
			probe.Error = err.Error()
		} else {
			probe.Got = status
		}
		report.add(probe)
	}
	return report
}

func (r *ReliabilityReport) add(p Probe) {
	p.Passed = p.Error == "" && p.Got == p.Want
	if p.Passed {
		r.Passed++
	} else if p.Error == "" {
		p.Error = fmt.Sprintf("got %d, expected %d", p.Got, p.Want)
	}
	r.Total++
	r.Probes = append(r.Probes, p)
}
