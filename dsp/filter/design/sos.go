package design

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-filter/dsp/filter/biquad"
	"github.com/cwbudde/algo-filter/dsp/filter/prototype"
	"github.com/cwbudde/algo-filter/internal/polyroot"
)

// root is one entry of a conjugate-reduced root list: real roots, or the
// upper half plane member of a conjugate pair.
type root struct {
	v      complex128
	isReal bool
}

type rootKind int

const (
	anyRoot rootKind = iota
	realRoot
	complexRoot
)

// Sections factors a digital zero-pole-gain filter into second-order
// sections.
//
// Poles are taken closest to the unit circle first. Each conjugate pair
// or pair of real poles is matched with the nearest zeros; a leftover real
// pole becomes a first-order section. The result is ordered by ascending
// pole radius (ties by ascending pole angle) and the gain is folded into
// the first section.
func Sections(z prototype.ZPK) ([]biquad.Coefficients, error) {
	if len(z.Poles) == 0 {
		return nil, fmt.Errorf("%w: no poles", filter.ErrInvalidFilter)
	}

	zeros := append([]complex128(nil), z.Zeros...)
	for len(zeros) < len(z.Poles) {
		zeros = append(zeros, 0)
	}

	poles := append([]complex128(nil), z.Poles...)
	for len(poles) < len(zeros) {
		poles = append(poles, 0)
	}

	p, err := reduce(poles)
	if err != nil {
		return nil, fmt.Errorf("%w: poles: %w", filter.ErrInvalidParameter, err)
	}

	q, err := reduce(zeros)
	if err != nil {
		return nil, fmt.Errorf("%w: zeros: %w", filter.ErrInvalidParameter, err)
	}

	type section struct {
		c      biquad.Coefficients
		radius float64
		angle  float64
	}

	var out []section

	for len(p) > 0 {
		i := worstPole(p)
		p1 := p[i]
		p = removeAt(p, i)

		var zs, ps []complex128

		switch {
		case p1.isReal && countReal(p) == 0:
			// Last real pole: first-order section.
			ps = []complex128{p1.v}

			if j := nearest(q, p1.v, realRoot); j >= 0 {
				zs = []complex128{q[j].v}
				q = removeAt(q, j)
			}

		case !p1.isReal && len(p)+1 == len(q) && countReal(p) == 1 && countReal(q) == 1:
			// One real pole and one real zero remain for later; this
			// pair must take a complex zero pair.
			ps = []complex128{p1.v, cmplx.Conj(p1.v)}

			j := nearest(q, p1.v, complexRoot)
			zs = []complex128{q[j].v, cmplx.Conj(q[j].v)}
			q = removeAt(q, j)

		default:
			if p1.isReal {
				k := closestRealToCircle(p)
				ps = []complex128{p1.v, p[k].v}
				p = removeAt(p, k)
			} else {
				ps = []complex128{p1.v, cmplx.Conj(p1.v)}
			}

			if j := nearest(q, p1.v, anyRoot); j >= 0 {
				z1 := q[j]
				q = removeAt(q, j)

				if !z1.isReal {
					zs = []complex128{z1.v, cmplx.Conj(z1.v)}
				} else {
					zs = []complex128{z1.v}

					if k := nearest(q, p1.v, realRoot); k >= 0 {
						zs = append(zs, q[k].v)
						q = removeAt(q, k)
					}
				}
			}
		}

		c := fromRoots(zs, ps)

		out = append(out, section{
			c:      c,
			radius: max(cmplx.Abs(ps[0]), cmplx.Abs(ps[len(ps)-1])),
			angle:  math.Abs(cmplx.Phase(ps[0])),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].radius != out[j].radius {
			return out[i].radius < out[j].radius
		}

		return out[i].angle < out[j].angle
	})

	coeffs := make([]biquad.Coefficients, len(out))
	for i, s := range out {
		coeffs[i] = s.c
	}

	coeffs[0].B0 *= z.Gain
	coeffs[0].B1 *= z.Gain
	coeffs[0].B2 *= z.Gain

	return coeffs, nil
}

// reduce splits roots into reals and upper half plane pair members.
func reduce(roots []complex128) ([]root, error) {
	pairs, reals, err := polyroot.Split(roots)
	if err != nil {
		return nil, err
	}

	out := make([]root, 0, len(pairs)+len(reals))
	for _, r := range pairs {
		out = append(out, root{v: r})
	}

	for _, r := range reals {
		out = append(out, root{v: complex(r, 0), isReal: true})
	}

	return out, nil
}

// worstPole returns the index of the pole closest to the unit circle.
func worstPole(p []root) int {
	best, bestDist := 0, math.Inf(1)
	for i, r := range p {
		if d := math.Abs(1 - cmplx.Abs(r.v)); d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

func closestRealToCircle(p []root) int {
	best, bestDist := -1, math.Inf(1)
	for i, r := range p {
		if !r.isReal {
			continue
		}

		if d := math.Abs(cmplx.Abs(r.v) - 1); d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

// nearest returns the index of the root of the requested kind closest to
// target, or -1 if there is none.
func nearest(list []root, target complex128, kind rootKind) int {
	best, bestDist := -1, math.Inf(1)
	for i, r := range list {
		switch {
		case kind == realRoot && !r.isReal, kind == complexRoot && r.isReal:
			continue
		}

		if d := cmplx.Abs(r.v - target); d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

func countReal(list []root) int {
	n := 0
	for _, r := range list {
		if r.isReal {
			n++
		}
	}

	return n
}

func removeAt(list []root, i int) []root {
	return append(list[:i:i], list[i+1:]...)
}

// fromRoots builds a section with monic numerator and denominator from
// up to two zeros and two poles.
func fromRoots(zeros, poles []complex128) biquad.Coefficients {
	b1, b2 := monicQuad(zeros)
	a1, a2 := monicQuad(poles)

	return biquad.Coefficients{B0: 1, B1: b1, B2: b2, A1: a1, A2: a2}
}

func monicQuad(r []complex128) (float64, float64) {
	switch len(r) {
	case 0:
		return 0, 0
	case 1:
		return -real(r[0]), 0
	default:
		return -real(r[0] + r[1]), real(r[0] * r[1])
	}
}
