// Package primality implements the probabilistic primality test that gates whether derived Montgomery constants are trusted.
//
// The test is Miller-Rabin with uniformly random bases, preceded by trial division by small primes.
// Rounds are independent of each other; a Tester with Workers > 1 runs them concurrently and stops
// all outstanding rounds as soon as one of them finds a witness of compositeness.
package primality
