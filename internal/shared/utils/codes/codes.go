package codes

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Alphabet for customer-facing codes. I, O, 0 and 1 are excluded because
// they are misread over the phone and at the door.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Random returns n characters drawn from Alphabet with crypto/rand
func Random(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(out), nil
}

// TicketCode returns an 8-character ticket redemption code
func TicketCode() (string, error) {
	return Random(8)
}

// OrderNumber returns a human-readable order number of the form
// ORD-<base36 timestamp>-<4 random chars>
func OrderNumber() (string, error) {
	suffix, err := Random(4)
	if err != nil {
		return "", err
	}
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return fmt.Sprintf("ORD-%s-%s", ts, suffix), nil
}
