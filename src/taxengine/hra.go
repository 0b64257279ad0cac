package taxengine

// HRAExemption computes the Section 10(13A) exemption: the minimum of
//
//  1. actual HRA received,
//  2. rent paid minus 10% of basic, and
//  3. 50% (metro) or 40% (non-metro) of basic,
//
// floored at zero. All three legs are annual figures over the same
// window. Metro status comes from the fixed 4-city allow-list —
// Bangalore is non-metro.
func HRAExemption(basicAnnual, hraReceivedAnnual, rentPaidAnnual float64, isMetro bool) float64 {
	optionA := hraReceivedAnnual
	optionB := rentPaidAnnual - HRARentMinusBasicPercent*basicAnnual
	pct := HRANonMetroPercent
	if isMetro {
		pct = HRAMetroPercent
	}
	optionC := pct * basicAnnual
	return max(min(optionA, optionB, optionC), 0)
}
