/*
Package stringcat implements the string concatenation chemistry.

Particles are strings of uppercase letters. A reaction takes a small sample
of strings: if the first one contains a repeated letter ("ABBC") it splits
between the two letters ("AB", "BC"), otherwise the whole sample is joined
into one string. Run in a well-mixed tank this produces a population whose
length distribution settles between growth and decay.

A second layout spreads the population over a grid of tanks and swaps
strings between neighbouring cells each generation.
*/
package stringcat
