package booking

import (
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
)

// Bucket classifies bookings by time relative to now or by status.
type Bucket string

const (
	BucketAll      Bucket = "ALL"
	BucketCurrent  Bucket = "CURRENT"
	BucketPast     Bucket = "PAST"
	BucketFuture   Bucket = "FUTURE"
	BucketWaiting  Bucket = "WAITING"
	BucketRejected Bucket = "REJECTED"
)

var buckets = map[Bucket]struct{}{
	BucketAll: {}, BucketCurrent: {}, BucketPast: {}, BucketFuture: {}, BucketWaiting: {}, BucketRejected: {},
}

// ParseBucket accepts bucket names in any case. Empty means ALL.
func ParseBucket(s string) (Bucket, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BucketAll, nil
	}
	b := Bucket(strings.ToUpper(s))
	if _, ok := buckets[b]; !ok {
		return "", ErrUnsupportedBucket
	}
	return b, nil
}

// Predicate returns the SQL filter for the bucket over the bookings table
// aliased as b, or nil for ALL.
func (b Bucket) Predicate(now time.Time) squirrel.Sqlizer {
	switch b {
	case BucketCurrent:
		return squirrel.And{
			squirrel.Lt{"b.start_time": now},
			squirrel.Gt{"b.end_time": now},
		}
	case BucketPast:
		return squirrel.Lt{"b.end_time": now}
	case BucketFuture:
		return squirrel.Gt{"b.start_time": now}
	case BucketWaiting:
		return squirrel.Eq{"b.status": StatusWaiting}
	case BucketRejected:
		return squirrel.Eq{"b.status": StatusRejected}
	default:
		return nil
	}
}

// Matches is the in-memory form of Predicate.
func (b Bucket) Matches(bk *Booking, now time.Time) bool {
	switch b {
	case BucketCurrent:
		return bk.Start.Before(now) && bk.End.After(now)
	case BucketPast:
		return bk.End.Before(now)
	case BucketFuture:
		return bk.Start.After(now)
	case BucketWaiting:
		return bk.Status == StatusWaiting
	case BucketRejected:
		return bk.Status == StatusRejected
	default:
		return true
	}
}
