package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-filter/dsp/filter/prototype"
)

// Prewarp maps a digital frequency in Hz to the analog angular frequency
// that the bilinear transform at sampleRate sends back onto it:
//
//	wa = 2*fs * tan(pi*f/fs)
func Prewarp(freqHz, sampleRate float64) float64 {
	return 2 * sampleRate * math.Tan(math.Pi*freqHz/sampleRate)
}

// LowpassToLowpass moves the cutoff of a unit lowpass prototype to wo
// rad/s.
func LowpassToLowpass(z prototype.ZPK, wo float64) prototype.ZPK {
	out := z.Clone()
	scaleRoots(out.Zeros, wo)
	scaleRoots(out.Poles, wo)
	out.Gain *= math.Pow(wo, float64(relativeDegree(z)))

	return out
}

// LowpassToHighpass substitutes s -> wo/s. The zeros at infinity move to
// the origin.
func LowpassToHighpass(z prototype.ZPK, wo float64) (prototype.ZPK, error) {
	degree := relativeDegree(z)
	if degree < 0 {
		return prototype.ZPK{}, fmt.Errorf("%w: more zeros than poles", filter.ErrInvalidParameter)
	}

	zeros, err := invertRoots(z.Zeros, wo)
	if err != nil {
		return prototype.ZPK{}, err
	}

	poles, err := invertRoots(z.Poles, wo)
	if err != nil {
		return prototype.ZPK{}, err
	}

	for range degree {
		zeros = append(zeros, 0)
	}

	return prototype.ZPK{
		Zeros: zeros,
		Poles: poles,
		Gain:  z.Gain * real(prototype.ProdNeg(z.Zeros)/prototype.ProdNeg(z.Poles)),
	}, nil
}

// LowpassToBandpass substitutes s -> (s^2 + wo^2)/(s*bw), centering the
// passband on wo with width bw. Every root splits in two and the zeros
// at infinity are split between the origin and infinity.
func LowpassToBandpass(z prototype.ZPK, wo, bw float64) prototype.ZPK {
	degree := relativeDegree(z)
	half := complex(bw/2, 0)

	zeros := splitRoots(z.Zeros, half, wo)
	poles := splitRoots(z.Poles, half, wo)

	for range degree {
		zeros = append(zeros, 0)
	}

	return prototype.ZPK{
		Zeros: zeros,
		Poles: poles,
		Gain:  z.Gain * math.Pow(bw, float64(degree)),
	}
}

// LowpassToBandstop substitutes s -> s*bw/(s^2 + wo^2). The zeros at
// infinity land on +-j*wo.
func LowpassToBandstop(z prototype.ZPK, wo, bw float64) (prototype.ZPK, error) {
	degree := relativeDegree(z)
	if degree < 0 {
		return prototype.ZPK{}, fmt.Errorf("%w: more zeros than poles", filter.ErrInvalidParameter)
	}

	zi, err := invertRoots(z.Zeros, bw/2)
	if err != nil {
		return prototype.ZPK{}, err
	}

	pinv, err := invertRoots(z.Poles, bw/2)
	if err != nil {
		return prototype.ZPK{}, err
	}

	zeros := splitRoots(zi, 1, wo)
	poles := splitRoots(pinv, 1, wo)

	for range degree {
		zeros = append(zeros, complex(0, wo), complex(0, -wo))
	}

	return prototype.ZPK{
		Zeros: zeros,
		Poles: poles,
		Gain:  z.Gain * real(prototype.ProdNeg(z.Zeros)/prototype.ProdNeg(z.Poles)),
	}, nil
}

// Bilinear maps an analog filter to the z-plane with
// s = 2*fs*(z-1)/(z+1). Zeros at infinity become zeros at z = -1.
func Bilinear(z prototype.ZPK, sampleRate float64) (prototype.ZPK, error) {
	degree := relativeDegree(z)
	if degree < 0 {
		return prototype.ZPK{}, fmt.Errorf("%w: more zeros than poles", filter.ErrInvalidParameter)
	}

	fs2 := complex(2*sampleRate, 0)

	mapRoots := func(roots []complex128) ([]complex128, error) {
		out := make([]complex128, len(roots), len(roots)+degree)
		for i, r := range roots {
			if r == fs2 {
				return nil, fmt.Errorf("%w: root at s = 2fs", filter.ErrInvalidParameter)
			}

			out[i] = (fs2 + r) / (fs2 - r)
		}

		return out, nil
	}

	zeros, err := mapRoots(z.Zeros)
	if err != nil {
		return prototype.ZPK{}, err
	}

	poles, err := mapRoots(z.Poles)
	if err != nil {
		return prototype.ZPK{}, err
	}

	for range degree {
		zeros = append(zeros, -1)
	}

	num := complex(1, 0)
	for _, r := range z.Zeros {
		num *= fs2 - r
	}

	den := complex(1, 0)
	for _, r := range z.Poles {
		den *= fs2 - r
	}

	return prototype.ZPK{
		Zeros: zeros,
		Poles: poles,
		Gain:  z.Gain * real(num/den),
	}, nil
}

func relativeDegree(z prototype.ZPK) int {
	return len(z.Poles) - len(z.Zeros)
}

func scaleRoots(roots []complex128, s float64) {
	for i := range roots {
		roots[i] *= complex(s, 0)
	}
}

// invertRoots returns w/r for every root.
func invertRoots(roots []complex128, w float64) ([]complex128, error) {
	out := make([]complex128, len(roots))
	for i, r := range roots {
		if r == 0 {
			return nil, fmt.Errorf("%w: root at the origin", filter.ErrInvalidParameter)
		}

		out[i] = complex(w, 0) / r
	}

	return out, nil
}

// splitRoots returns the two solutions r*scale +- sqrt((r*scale)^2 - wo^2)
// for every root, the plus branch first.
func splitRoots(roots []complex128, scale complex128, wo float64) []complex128 {
	w2 := complex(wo*wo, 0)

	plus := make([]complex128, 0, 2*len(roots))
	minus := make([]complex128, 0, len(roots))

	for _, r := range roots {
		r *= scale
		d := cmplx.Sqrt(r*r - w2)
		plus = append(plus, r+d)
		minus = append(minus, r-d)
	}

	return append(plus, minus...)
}
