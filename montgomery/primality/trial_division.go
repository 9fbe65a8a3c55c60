package primality

import "github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"

// smallPrimes are the odd primes below 256.
var smallPrimes = [...]uint64{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97,
	101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151, 157, 163, 167, 173, 179, 181, 191, 193, 197, 199,
	211, 223, 227, 229, 233, 239, 241, 251,
}

// smallPrimeBound is the square of the largest entry of smallPrimes.
// Numbers below it without a factor in smallPrimes are prime.
const smallPrimeBound = 251 * 251

// trialDivision decides primality of n by trial division, if possible.
// decided == false means that n is odd, has no prime factor below 256 and is at least smallPrimeBound.
func trialDivision(n *fixedWidth.Uint256) (decided bool, isPrime bool) {
	small := n[1] == 0 && n[2] == 0 && n[3] == 0
	if small && n[0] < 2 {
		return true, false
	}
	if small && n[0] == 2 {
		return true, true
	}
	if n.IsEven() {
		return true, false
	}
	for _, p := range smallPrimes {
		if small && n[0] == p {
			return true, true
		}
		if n.ModUint64(p) == 0 {
			return true, false
		}
	}
	if small && n[0] < smallPrimeBound {
		return true, true
	}
	return false, false
}
