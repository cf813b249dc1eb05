// Package masking renders wallet addresses for display. Every projection
// that shows an address goes through MaskForViewer.
package masking

import "unicode/utf8"

const (
	// keep is how many characters survive at each end of a masked address.
	keep      = 8
	separator = "..."
)

// Mask hides the middle of address, keeping the first and last eight
// characters. Addresses of sixteen characters or fewer, including the empty
// string, are returned unchanged.
func Mask(address string) string {
	if utf8.RuneCountInString(address) <= 2*keep {
		return address
	}
	r := []rune(address)
	return string(r[:keep]) + separator + string(r[len(r)-keep:])
}

// MaskForViewer returns address in full when it is exactly the viewer's
// own address and masked otherwise.
func MaskForViewer(address, viewerOwnAddress string) string {
	if address == viewerOwnAddress {
		return address
	}
	return Mask(address)
}
