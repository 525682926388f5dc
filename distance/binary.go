package distance

// Binary distance metrics for membership vectors.
// Non-zero values are true (member) and zero values are false.

// Counts holds the 2x2 contingency table of two binary vectors.
type Counts struct {
	TT, TF, FT, FF int
}

// N is the vector length.
func (c Counts) N() int {
	return c.TT + c.TF + c.FT + c.FF
}

// Count tallies true-true, true-false, false-true and false-false pairs.
func Count(x, y []float64) Counts {
	var c Counts
	for i := range x {
		xTrue := x[i] != 0
		yTrue := y[i] != 0
		switch {
		case xTrue && yTrue:
			c.TT++
		case xTrue && !yTrue:
			c.TF++
		case !xTrue && yTrue:
			c.FT++
		default:
			c.FF++
		}
	}
	return c
}

// ratio returns num/denom, or 0 when denom is 0.
func ratio(num, denom int) float64 {
	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

// Hamming computes the proportion of disagreeing components.
// D(x, y) = (ntf + nft) / n
func Hamming(x, y []float64) float64 {
	c := Count(x, y)
	return ratio(c.TF+c.FT, c.N())
}

// Jaccard computes the Jaccard distance.
// D(x, y) = 1 - |intersection| / |union|
// D(x, y) = (ntf + nft) / (ntt + ntf + nft)
// Two empty sets are at distance 0.
func Jaccard(x, y []float64) float64 {
	c := Count(x, y)
	return ratio(c.TF+c.FT, c.TT+c.TF+c.FT)
}

// JaccardCounts computes the Jaccard distance from set sizes.
func JaccardCounts(intersection, union int) float64 {
	return ratio(union-intersection, union)
}

// Dice computes the Sørensen-Dice distance.
// D(x, y) = (ntf + nft) / (2*ntt + ntf + nft)
func Dice(x, y []float64) float64 {
	c := Count(x, y)
	return ratio(c.TF+c.FT, 2*c.TT+c.TF+c.FT)
}

// Matching is Hamming for binary vectors.
func Matching(x, y []float64) float64 {
	return Hamming(x, y)
}

// Kulsinski computes the Kulsinski distance.
// D(x, y) = (ntf + nft - ntt + n) / (ntf + nft + n)
func Kulsinski(x, y []float64) float64 {
	c := Count(x, y)
	n := c.N()
	return ratio(c.TF+c.FT-c.TT+n, c.TF+c.FT+n)
}

// RogersTanimoto computes the Rogers-Tanimoto distance.
// D(x, y) = 2*(ntf + nft) / (n + ntf + nft)
func RogersTanimoto(x, y []float64) float64 {
	c := Count(x, y)
	return ratio(2*(c.TF+c.FT), c.N()+c.TF+c.FT)
}

// RussellRao computes the Russell-Rao distance.
// D(x, y) = (n - ntt) / n
func RussellRao(x, y []float64) float64 {
	c := Count(x, y)
	return ratio(c.N()-c.TT, c.N())
}

// SokalMichener is the same as Rogers-Tanimoto for binary vectors.
func SokalMichener(x, y []float64) float64 {
	return RogersTanimoto(x, y)
}

// SokalSneath computes the Sokal-Sneath distance.
// D(x, y) = 2*(ntf + nft) / (ntt + 2*(ntf + nft))
func SokalSneath(x, y []float64) float64 {
	c := Count(x, y)
	return ratio(2*(c.TF+c.FT), c.TT+2*(c.TF+c.FT))
}

// Yule computes the Yule distance.
// D(x, y) = 2*ntf*nft / (ntt*nff + ntf*nft)
func Yule(x, y []float64) float64 {
	c := Count(x, y)
	return ratio(2*c.TF*c.FT, c.TT*c.FF+c.TF*c.FT)
}
