/*
Package rlkex is a pure Go demonstration of a Ring-LWE key exchange with
signal reconciliation. Two parties sharing a public random ring element each
publish a noisy product of it with their secret; one helper bit-vector (the
signal) then lets both sides round their approximately equal cross products
to the same shared bit string.

The algorithmic content lives in the ring and kex packages; the programs
under examples drive a full two-party exchange and measure its empirical
agreement rate. The implementation favours clarity over hardening: it is not
constant-time and must not be used to protect real traffic.
*/
package rlkex
