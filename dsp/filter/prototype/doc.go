// Package prototype builds normalized analog lowpass prototypes as zeros,
// poles and gain ([ZPK]) for the classical IIR families.
//
// Every prototype has its reference frequency at 1 rad/s and unity
// passband gain. Butterworth and Chebyshev I have unity gain at DC for odd
// orders; even-order Chebyshev I and elliptic designs peak at unity and
// sit at the ripple floor at DC. Chebyshev II places its stopband edge at
// 1 rad/s, the others their passband edge.
package prototype
