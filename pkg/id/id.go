package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	// Seed from crypto/rand; ulid.Monotonic keeps ids minted within the same
	// millisecond strictly increasing.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID string stamped with the current time.
func New() string {
	return At(time.Now())
}

// At returns a ULID string stamped with t. Trade ids are minted with the
// trade's creation time so that id order and createdAt order agree. Times
// before the Unix epoch, including the zero time, are stamped as the epoch;
// times past the ULID range are stamped with its maximum.
func At(t time.Time) string {
	ms := timestamp(t)

	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ms, mono)
	if err == nil {
		return id.String()
	}
	// Monotonic entropy overflowed within one millisecond.
	if id, err = ulid.New(ms, cryptoRand.Reader); err == nil {
		return id.String()
	}
	var zero ulid.ULID
	_ = zero.SetTime(ms)
	return zero.String()
}

func timestamp(t time.Time) uint64 {
	if t.Before(time.Unix(0, 0)) {
		return 0
	}
	ms := t.UnixMilli()
	if uint64(ms) > ulid.MaxTime() {
		return ulid.MaxTime()
	}
	return uint64(ms)
}

// Time extracts the timestamp encoded in a ULID string.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}
