package item

import "time"

// BookingWindow returns the approved booking with the latest start before
// asOf and the approved booking with the earliest start after asOf.
// Either may be nil. Equal starts resolve to the smaller id.
func BookingWindow(bookings []BookingSummary, asOf time.Time) (last, next *BookingRef) {
	var lastB, nextB *BookingSummary
	for i := range bookings {
		b := &bookings[i]
		if b.Status != StatusApproved {
			continue
		}
		switch {
		case b.Start.Before(asOf):
			if lastB == nil || b.Start.After(lastB.Start) || (b.Start.Equal(lastB.Start) && b.ID < lastB.ID) {
				lastB = b
			}
		case b.Start.After(asOf):
			if nextB == nil || b.Start.Before(nextB.Start) || (b.Start.Equal(nextB.Start) && b.ID < nextB.ID) {
				nextB = b
			}
		}
	}
	return toRef(lastB), toRef(nextB)
}

// CanComment reports whether userID has a finished approved booking.
func CanComment(bookings []BookingSummary, userID string, asOf time.Time) bool {
	for _, b := range bookings {
		if b.BookerID == userID && b.Status == StatusApproved && b.End.Before(asOf) {
			return true
		}
	}
	return false
}

func toRef(b *BookingSummary) *BookingRef {
	if b == nil {
		return nil
	}
	return &BookingRef{ID: b.ID, BookerID: b.BookerID}
}
