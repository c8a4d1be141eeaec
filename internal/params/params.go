package params

const (
	// Reference curve y² = x³ + 31988x + 1000 over ℤ₃₁₉₉₁, the curve of the demonstration program.
	ReferenceP  = 31991
	ReferenceA1 = 0
	ReferenceA2 = 0
	ReferenceA3 = 0
	ReferenceA4 = 31988
	ReferenceA6 = 1000

	// ReferenceGx, ReferenceGy is the generator of the reference curve.
	ReferenceGx = 0
	ReferenceGy = 5585

	// ReferenceOrder is the order of the reference generator, as found by repeated addition.
	ReferenceOrder = 32089

	// DemoMultiples is the number of multiples of the generator printed by the demonstration.
	// The last one is the identity.
	DemoMultiples = 32089

	// DemoSecret, DemoMessage and DemoEphemeral are the values of the ElGamal demonstration.
	// The recipient key is DemoSecret⋅G = (12507, 2027).
	DemoSecret    = 5103
	DemoMessage   = 10000
	DemoEphemeral = 523

	// MaxEphemeralAttempts bounds how many ephemeral scalars are drawn before giving up
	// on an encryption whose ephemeral scalars keep turning out degenerate.
	MaxEphemeralAttempts = 32
)
