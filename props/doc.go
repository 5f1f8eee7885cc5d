// Package props implements the string-keyed property sets that configure
// the inference engines. A Set maps keys to string values; typed getters
// parse on access and report missing or malformed entries with the key
// attached, so an engine can reject a bad configuration before running.
//
// Sets render deterministically ("[k1=v1,k2=v2]", keys sorted) and can be
// loaded from YAML, which keeps experiment settings in files.
package props
