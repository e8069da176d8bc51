package market

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Buy codes avoid visually ambiguous characters so they survive being read
// aloud in chat.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// newBuyCode returns a short random code. Uniqueness is enforced by the
// store; the caller retries on collision.
func newBuyCode(rnd func(int) int) string {
	buf := make([]byte, BuyCodeLength)
	for i := range buf {
		buf[i] = codeAlphabet[rnd(len(codeAlphabet))]
	}
	return string(buf)
}

// fallbackBuyCode derives a code from the clock for the pathological case
// where every random attempt collided.
func fallbackBuyCode() string {
	return fmt.Sprintf("T%07X", time.Now().UnixNano()&0xFFFFFFF)
}

func defaultCodeRand(n int) int {
	return rand.IntN(n)
}
