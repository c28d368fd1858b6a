// Package report serializes clustering results.
//
// A report records the codec it was written with; Load reads that name first
// and decodes the rest with the same codec.
package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/point"
)

// ErrUnknownCodec is returned by Load for a report written with a codec that
// is not built in.
var ErrUnknownCodec = errors.New("report: unknown codec")

// Coord is a point encoded as [x, y].
type Coord [2]float64

func coord(p point.Point) Coord { return Coord{p.X, p.Y} }

// Point converts c back to a point.
func (c Coord) Point() point.Point { return point.New(c[0], c[1]) }

// Cluster is one group of a report.
type Cluster struct {
	Mean    Coord   `json:"mean"`
	Points  []Coord `json:"points"`
	Indices []int   `json:"indices"`
}

// Report is the serializable form of a lloyd.Result.
type Report struct {
	Codec      string    `json:"codec"`
	Dataset    string    `json:"dataset,omitempty"`
	K          int       `json:"k"`
	Iterations int       `json:"iterations"`
	Converged  bool      `json:"converged"`
	SSE        float64   `json:"sse"`
	Means      []Coord   `json:"means"`
	Clusters   []Cluster `json:"clusters"`
	Labels     []int     `json:"labels"`
}

// New builds a report from res. dataset names the input and may be empty.
func New(dataset string, res *lloyd.Result) *Report {
	r := &Report{
		Dataset:    dataset,
		K:          res.K(),
		Iterations: res.Iterations,
		Converged:  res.Converged,
		SSE:        res.SSE(),
		Means:      make([]Coord, len(res.Means)),
		Clusters:   make([]Cluster, len(res.Groups)),
		Labels:     res.Labels(),
	}
	for i, m := range res.Means {
		r.Means[i] = coord(m)
	}
	for i, g := range res.Groups {
		c := Cluster{
			Mean:    coord(g.Mean),
			Points:  make([]Coord, len(g.Points)),
			Indices: append([]int(nil), g.Indices...),
		}
		for j, p := range g.Points {
			c.Points[j] = coord(p)
		}
		r.Clusters[i] = c
	}
	return r
}

// Groups returns the clusters as points, in report order.
func (r *Report) Groups() [][]point.Point {
	out := make([][]point.Point, len(r.Clusters))
	for i, c := range r.Clusters {
		pts := make([]point.Point, len(c.Points))
		for j, p := range c.Points {
			pts[j] = p.Point()
		}
		out[i] = pts
	}
	return out
}

// MeanPoints returns the means as points.
func (r *Report) MeanPoints() []point.Point {
	out := make([]point.Point, len(r.Means))
	for i, m := range r.Means {
		out[i] = m.Point()
	}
	return out
}

// Marshal encodes r with c (codec.Default if nil) and stamps the codec name.
// Codecs implementing codec.Indenter produce indented output.
func Marshal(r *Report, c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	r.Codec = c.Name()
	if ind, ok := c.(codec.Indenter); ok {
		return ind.MarshalIndent(r, "", "  ")
	}
	return c.Marshal(r)
}

// Unmarshal decodes a report, selecting the codec recorded in data.
func Unmarshal(data []byte) (*Report, error) {
	var header struct {
		Codec string `json:"codec"`
	}
	if err := codec.Default.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("report: decode header: %w", err)
	}

	c, ok := codec.ByName(header.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, header.Codec)
	}

	var r Report
	if err := c.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("report: decode with %s: %w", c.Name(), err)
	}
	return &r, nil
}

// Save encodes r with c and writes it to store under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, r *Report, c codec.Codec) error {
	data, err := Marshal(r, c)
	if err != nil {
		return fmt.Errorf("report: encode %s: %w", name, err)
	}
	return store.Put(ctx, name, data)
}

// Load reads and decodes the named report.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*Report, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
