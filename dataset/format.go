package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/lloyd/point"
)

// ErrMalformedLine is returned (wrapped in *ParseError) for a line that is
// not a pair of finite numbers.
var ErrMalformedLine = errors.New("dataset: malformed line")

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// ParseError describes a malformed input line.
type ParseError struct {
	Line int    // 1-based line number
	Text string // the offending line
	Err  error  // underlying strconv error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dataset: line %d: malformed point %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("dataset: line %d: malformed point %q", e.Line, e.Text)
}

// Unwrap allows errors.Is(err, ErrMalformedLine).
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedLine, e.Err}
	}
	return []error{ErrMalformedLine}
}

// Parse reads points from r.
func Parse(r io.Reader) ([]point.Point, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var pts []point.Point
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		p, err := parseLine(text)
		if err != nil {
			err.Line = line
			return nil, err
		}
		pts = append(pts, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dataset: read line %d: %w", line+1, err)
	}
	return pts, nil
}

func parseLine(text string) (point.Point, *ParseError) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return point.Point{}, &ParseError{Text: text}
	}

	var xy [2]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return point.Point{}, &ParseError{Text: text, Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return point.Point{}, &ParseError{Text: text}
		}
		xy[i] = v
	}
	return point.New(xy[0], xy[1]), nil
}

// Write formats points to w, one "x y" pair per line, using the shortest
// representation that round-trips.
func Write(w io.Writer, pts []point.Point) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)
	for _, p := range pts {
		buf = buf[:0]
		buf = strconv.AppendFloat(buf, p.X, 'f', -1, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, p.Y, 'f', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
