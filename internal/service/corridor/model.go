package corridor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrInvalidReferenceData = errors.New("invalid corridor reference data")

// Corridor is an ordered list of stops along one travel artery.
type Corridor struct {
	Name  string   `json:"name"`
	Stops []string `json:"stops"`
}

// Distance is a known point-to-point distance in km.
type Distance struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Km   float64 `json:"km"`
}

// ReferenceData is the on-disk form of a Model.
type ReferenceData struct {
	Corridors []Corridor `json:"corridors"`
	Distances []Distance `json:"distances"`
}

// Model answers corridor containment and coarse distance questions.
// It is immutable after construction and safe for concurrent use.
type Model struct {
	corridors []Corridor
	// lowered[i][j] is corridors[i].Stops[j] lower-cased
	lowered   [][]string
	distances map[string]map[string]float64
}

// New validates and copies the reference data.
func New(data ReferenceData) (*Model, error) {
	m := &Model{
		corridors: make([]Corridor, 0, len(data.Corridors)),
		lowered:   make([][]string, 0, len(data.Corridors)),
		distances: make(map[string]map[string]float64, len(data.Distances)),
	}

	for i, c := range data.Corridors {
		if len(c.Stops) < 2 {
			return nil, fmt.Errorf("%w: corridor %d (%q) needs at least two stops", ErrInvalidReferenceData, i, c.Name)
		}
		stops := make([]string, len(c.Stops))
		lowered := make([]string, len(c.Stops))
		for j, s := range c.Stops {
			if normalize(s) == "" {
				return nil, fmt.Errorf("%w: corridor %d (%q) has an empty stop", ErrInvalidReferenceData, i, c.Name)
			}
			stops[j] = s
			lowered[j] = normalize(s)
		}
		m.corridors = append(m.corridors, Corridor{Name: c.Name, Stops: stops})
		m.lowered = append(m.lowered, lowered)
	}

	for _, d := range data.Distances {
		from, to := normalize(d.From), normalize(d.To)
		if from == "" || to == "" || d.Km <= 0 {
			return nil, fmt.Errorf("%w: distance %q-%q must name two places and be positive", ErrInvalidReferenceData, d.From, d.To)
		}
		if m.distances[from] == nil {
			m.distances[from] = make(map[string]float64)
		}
		m.distances[from][to] = d.Km
	}

	return m, nil
}

// Load reads reference data from a JSON file. An empty path returns the built-in Karnataka data.
func Load(path string) (*Model, error) {
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corridor reference data: %w", err)
	}

	var data ReferenceData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReferenceData, err)
	}

	return New(data)
}

// IsOnRoute reports whether the user's segment lies inside the ride's segment on some corridor.
// All four places must match a stop of the same corridor; matching is a case-insensitive
// substring test in either direction, so "Hubballi Rural" matches the stop "Hubballi"
// and "Tumak" matches "Tumakuru". Partial names shorter than three characters never match.
// The first corridor that contains the segment wins.
func (m *Model) IsOnRoute(userPickup, userDropoff, ridePickup, rideDropoff string) bool {
	places := [4]string{normalize(ridePickup), normalize(rideDropoff), normalize(userPickup), normalize(userDropoff)}
	for _, p := range places {
		if p == "" {
			return false
		}
	}

	for _, stops := range m.lowered {
		var idx [4]int
		found := true
		for i, p := range places {
			if idx[i] = stopIndex(stops, p); idx[i] < 0 {
				found = false
				break
			}
		}
		if !found {
			continue
		}

		lo, hi := min(idx[0], idx[1]), max(idx[0], idx[1])
		if idx[2] >= lo && idx[2] <= hi && idx[3] >= lo && idx[3] <= hi {
			return true
		}
	}

	return false
}

// EstimateDistance looks up (from,to) and then (to,from) in the static table.
func (m *Model) EstimateDistance(from, to string) (float64, bool) {
	from, to = normalize(from), normalize(to)
	if km, ok := m.distances[from][to]; ok {
		return km, true
	}
	if km, ok := m.distances[to][from]; ok {
		return km, true
	}
	return 0, false
}

// Corridors returns a copy of the corridor list.
func (m *Model) Corridors() []Corridor {
	out := make([]Corridor, len(m.corridors))
	for i, c := range m.corridors {
		out[i] = Corridor{Name: c.Name, Stops: append([]string(nil), c.Stops...)}
	}
	return out
}

// minPartialLen is the shortest input that may match as part of a stop name.
const minPartialLen = 3

func stopIndex(stops []string, place string) int {
	for i, s := range stops {
		if strings.Contains(place, s) || (len(place) >= minPartialLen && strings.Contains(s, place)) {
			return i
		}
	}
	return -1
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
