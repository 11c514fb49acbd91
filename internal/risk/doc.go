// Package risk classifies oracle risk scores into the five severity tiers
// shown in the hover popup.
//
// A score is an integer percentage where 0 means "certainly safe" and 100
// means "certainly a scam". Classify maps any integer onto a Tier; it does
// not validate the range, so callers are responsible for producing a sane
// percentage.
package risk
