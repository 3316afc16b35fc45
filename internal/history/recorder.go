package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/lox/easy21/internal/fileutil"
)

// Recorder collects episodes from concurrent workers.
type Recorder struct {
	mu       sync.Mutex
	episodes []Episode
	limit    int
	dropped  int
}

// NewRecorder returns a recorder keeping at most limit episodes. A limit of
// zero keeps everything.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Record stores ep, assigning an ID if it has none.
func (r *Recorder) Record(ep Episode) {
	if ep.ID == "" {
		ep.ID = NewID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.limit > 0 && len(r.episodes) >= r.limit {
		r.dropped++
		return
	}
	r.episodes = append(r.episodes, ep)
}

// Len returns the number of stored episodes.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.episodes)
}

// Dropped returns how many episodes were discarded because of the limit.
func (r *Recorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Episodes returns the stored episodes ordered by Index.
func (r *Recorder) Episodes() []Episode {
	r.mu.Lock()
	out := make([]Episode, len(r.episodes))
	copy(out, r.episodes)
	r.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// WriteTo writes every episode as one JSON object per line.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	enc := json.NewEncoder(cw)
	for _, ep := range r.Episodes() {
		if err := enc.Encode(ep); err != nil {
			return cw.n, fmt.Errorf("encode episode %s: %w", ep.ID, err)
		}
	}
	return cw.n, nil
}

// WriteFile atomically replaces path with the recorded episodes.
func (r *Recorder) WriteFile(path string) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		_, err := r.WriteTo(w)
		return err
	})
}

// Read decodes JSON-lines episodes from rd.
func Read(rd io.Reader) ([]Episode, error) {
	dec := json.NewDecoder(bufio.NewReader(rd))
	var out []Episode
	for {
		var ep Episode
		err := dec.Decode(&ep)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("decode episode %d: %w", len(out)+1, err)
		}
		out = append(out, ep)
	}
}

// Load reads a history file written by WriteFile.
func Load(path string) ([]Episode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
