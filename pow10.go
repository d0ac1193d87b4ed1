package atod

// Exact binary representations of 10^(2^k) and 10^(-2^k) for k = 0..8,
// normalized to a full 64-bit fraction with the leading 1 bit dropped.
// Each mantissa is the infinite binary expansion rounded to 65 bits;
// the positive powers up to 10^16 are exact. The values were computed
// offline with arbitrary-precision arithmetic (pow10_test.go re-derives
// them with math/big); they must never be regenerated with native
// floating point, which cannot represent them.

// pow10pos[k] = 10^(2^k)
var pow10pos = [9]extFloat{
	{mant: 0x4000000000000000, exp: 3},   // 1e1
	{mant: 0x9000000000000000, exp: 6},   // 1e2
	{mant: 0x3880000000000000, exp: 13},  // 1e4
	{mant: 0x7D78400000000000, exp: 26},  // 1e8
	{mant: 0x1C37937E08000000, exp: 53},  // 1e16
	{mant: 0x3B8B5B5056E16B3C, exp: 106}, // 1e32
	{mant: 0x84F03E93FF9F4DAA, exp: 212}, // 1e64
	{mant: 0x27748F9301D319C0, exp: 425}, // 1e128
	{mant: 0x54FDD7F73BF3BD1C, exp: 850}, // 1e256
}

// pow10neg[k] = 10^(-2^k)
var pow10neg = [9]extFloat{
	{mant: 0x999999999999999A, exp: -4},   // 1e-1
	{mant: 0x47AE147AE147AE14, exp: -7},   // 1e-2
	{mant: 0xA36E2EB1C432CA58, exp: -14},  // 1e-4
	{mant: 0x5798EE2308C39DFA, exp: -27},  // 1e-8
	{mant: 0xCD2B297D889BC2B7, exp: -54},  // 1e-16
	{mant: 0x9F623D5A8A732975, exp: -107}, // 1e-32
	{mant: 0x50FFD44F4A73D34A, exp: -213}, // 1e-64
	{mant: 0xBBA08CF8C979C941, exp: -426}, // 1e-128
	{mant: 0x8062864AC6F43274, exp: -851}, // 1e-256
}
