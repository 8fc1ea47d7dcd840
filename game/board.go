package game

import "math/bits"

// Sector identifies a single board cell. Sectors are numbered breadth-first
// over the rings: ring r holds 2^r sectors, and the sector at azimuth a in
// ring r has number 2^r + a - 1. Sector 0 is the (unplayable) center.
type Sector int

// Board is the static orbital grid: concentric rings of angular sectors.
// Rings below MinRing and above MaxRing exist in the numbering but are not
// playable. The board never changes after creation.
type Board struct {
	MinRing int
	GeoRing int
	MaxRing int
}

// NewBoard builds a board from validated ring bounds. Callers are expected
// to have run Config.Validate first; NewBoard performs no checks of its own.
func NewBoard(minRing, geoRing, maxRing int) *Board {
	return &Board{MinRing: minRing, GeoRing: geoRing, MaxRing: maxRing}
}

// NumSectors returns the size of the sector numbering space, including the
// unplayable inner rings.
func (b *Board) NumSectors() int {
	return 1<<(b.MaxRing+1) - 1
}

// Contains reports whether s is a playable sector.
func (b *Board) Contains(s Sector) bool {
	if s < 0 || int(s) >= b.NumSectors() {
		return false
	}
	ring := b.SectorRing(s)
	return ring >= b.MinRing && ring <= b.MaxRing
}

// SectorRing returns the ring a sector lies in.
func (b *Board) SectorRing(s Sector) int {
	return bits.Len(uint(s)+1) - 1
}

// SectorCoord converts a sector number to (ring, azimuth) coordinates.
func (b *Board) SectorCoord(s Sector) (ring, azim int) {
	ring = b.SectorRing(s)
	azim = int(s) - (1 << ring) + 1
	return ring, azim
}

// SectorAt converts (ring, azimuth) coordinates to a sector number. The
// azimuth wraps around the ring.
func (b *Board) SectorAt(ring, azim int) Sector {
	n := 1 << ring
	azim = ((azim % n) + n) % n
	return Sector(n + azim - 1)
}

// SectorsInRing returns the number of sectors in a ring.
func (b *Board) SectorsInRing(ring int) int {
	return 1 << ring
}

// RelativeAzimuth returns the sector offset by rel azimuth steps along the
// same ring as s.
func (b *Board) RelativeAzimuth(s Sector, rel int) Sector {
	ring, azim := b.SectorCoord(s)
	return b.SectorAt(ring, azim+rel)
}

// Prograde returns the next sector along the orbital direction of travel.
func (b *Board) Prograde(s Sector) Sector {
	return b.RelativeAzimuth(s, 1)
}

// Retrograde returns the previous sector along the orbital direction.
func (b *Board) Retrograde(s Sector) Sector {
	return b.RelativeAzimuth(s, -1)
}

// RadialIn returns the sector one ring closer to the center, or false when
// the move would leave the playable board.
func (b *Board) RadialIn(s Sector) (Sector, bool) {
	ring, azim := b.SectorCoord(s)
	if ring <= b.MinRing {
		return 0, false
	}
	return b.SectorAt(ring-1, azim/2), true
}

// RadialOut returns the lower-azimuth sector one ring further out, or false
// when the move would leave the playable board. The outer ring holds twice
// as many sectors, so every sector has two outward neighbors; the second is
// the prograde of the returned one.
func (b *Board) RadialOut(s Sector) (Sector, bool) {
	ring, azim := b.SectorCoord(s)
	if ring >= b.MaxRing {
		return 0, false
	}
	return b.SectorAt(ring+1, azim*2), true
}

// AdjacentSectors returns all sectors one hop from s: prograde, retrograde,
// radial in, and both radial out branches.
func (b *Board) AdjacentSectors(s Sector) []Sector {
	adj := []Sector{b.Prograde(s), b.Retrograde(s)}
	if in, ok := b.RadialIn(s); ok {
		adj = append(adj, in)
	}
	if out, ok := b.RadialOut(s); ok {
		adj = append(adj, out, b.Prograde(out))
	}
	// rings with a single neighbor direction can produce duplicates
	seen := make(map[Sector]bool, len(adj))
	uniq := adj[:0]
	for _, a := range adj {
		if a != s && !seen[a] {
			seen[a] = true
			uniq = append(uniq, a)
		}
	}
	return uniq
}

// Adjacent reports whether two sectors are one hop apart.
func (b *Board) Adjacent(s1, s2 Sector) bool {
	for _, a := range b.AdjacentSectors(s1) {
		if a == s2 {
			return true
		}
	}
	return false
}

// Distance returns the number of adjacency hops between two sectors, or -1
// if either sector is not playable. Plain BFS; the board is small.
func (b *Board) Distance(from, to Sector) int {
	if !b.Contains(from) || !b.Contains(to) {
		return -1
	}
	if from == to {
		return 0
	}
	dist := map[Sector]int{from: 0}
	queue := []Sector{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, adj := range b.AdjacentSectors(cur) {
			if _, visited := dist[adj]; visited {
				continue
			}
			dist[adj] = dist[cur] + 1
			if adj == to {
				return dist[adj]
			}
			queue = append(queue, adj)
		}
	}
	return -1
}

// SectorsWithin returns all playable sectors at most radius hops from s,
// including s itself, in ascending sector order.
func (b *Board) SectorsWithin(s Sector, radius int) []Sector {
	var sectors []Sector
	for n := 0; n < b.NumSectors(); n++ {
		sec := Sector(n)
		if !b.Contains(sec) {
			continue
		}
		if d := b.Distance(s, sec); d >= 0 && d <= radius {
			sectors = append(sectors, sec)
		}
	}
	return sectors
}

// initialGoals returns the starting goal sectors: on the GEO ring, 180
// degrees apart.
func (b *Board) initialGoals() [2]Sector {
	half := b.SectorsInRing(b.GeoRing) / 2
	return [2]Sector{b.SectorAt(b.GeoRing, 0), b.SectorAt(b.GeoRing, half)}
}
